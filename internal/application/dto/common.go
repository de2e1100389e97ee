package dto

import (
	"encoding/json"
	"time"
)

// Envelope cuerpo de toda respuesta HTTP.
// Data se omite en errores; Status solo se informa en errores.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Status    int         `json:"status,omitempty"`
	Total     *int        `json:"total,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// OK envelope de éxito.
func OK(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message, Timestamp: time.Now().UTC()}
}

// OKList envelope de éxito con total de elementos.
func OKList(data interface{}, total int, message string) Envelope {
	env := OK(data, message)
	env.Total = &total
	return env
}

// Fail envelope de error.
func Fail(status int, errMsg, message string) Envelope {
	return Envelope{Success: false, Error: errMsg, Message: message, Status: status, Timestamp: time.Now().UTC()}
}

// RawEnvelope envelope leído desde una función remota; Data queda sin decodificar.
type RawEnvelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
	Status    int             `json:"status,omitempty"`
	Total     *int            `json:"total,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
