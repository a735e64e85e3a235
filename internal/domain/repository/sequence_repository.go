package repository

import "time"

// SequenceRepository define el puerto del secuenciador de documentos.
// Next devuelve el siguiente valor para la clave (prefix, fecha calendario),
// serializado por clave: dos llamadas concurrentes sobre la misma clave nunca
// reciben el mismo valor. Claves distintas no contienden.
type SequenceRepository interface {
	Next(prefix string, date time.Time) (int, error)
}
