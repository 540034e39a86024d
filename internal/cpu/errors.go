package cpu

import "fmt"

// DecodeError reports an instruction word that matches no defined opcode
// pattern. It is fatal for the instance.
type DecodeError struct {
	Opcode uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode %04X", e.Opcode)
}
