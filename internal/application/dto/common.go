package dto

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FlexNumber acepta un número JSON o una string numérica. La capa de
// formularios manda a veces "5" en lugar de 5; toda la coerción ocurre aquí,
// en la frontera, para que al motor solo lleguen valores ya tipados.
type FlexNumber string

// UnmarshalJSON admite number, string y null.
func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	*n = FlexNumber(b)
	return nil
}

// Empty indica si no llegó valor (campo ausente, null o string vacía).
func (n FlexNumber) Empty() bool { return n == "" }

// Int convierte a entero.
func (n FlexNumber) Int() (int, error) {
	v, err := strconv.Atoi(string(n))
	if err != nil {
		return 0, fmt.Errorf("%q no es un número entero", string(n))
	}
	return v, nil
}

// Decimal convierte a decimal (precios).
func (n FlexNumber) Decimal() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q no es un número", string(n))
	}
	return v, nil
}
