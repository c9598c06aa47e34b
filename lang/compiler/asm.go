package compiler

import (
	"fmt"
	"io"
)

// names for the three fixed microcode block entry points, used by Disassemble
// to annotate addresses the way the teacher's asm.go annotates jump targets.
var blockLabels = map[uint32]string{
	S2Start:            "s2",
	D1PromiseStart:      "d1promise",
	D1ApplicationStart: "d1application",
}

// Disassemble writes a human-readable listing of p to w, one instruction per
// line, in the teacher's asm.go column style (address, mnemonic, operand).
// This backs the "asm" CLI command and the package's disassembly test.
func Disassemble(w io.Writer, p *Program) error {
	for addr, instr := range p.Code {
		label := blockLabels[uint32(addr)]
		prefix := "    "
		if label != "" {
			prefix = label + ":"
			if len(prefix) < 4 {
				prefix += "    "[:4-len(prefix)]
			}
		}
		if uint32(addr) == p.EntryPC {
			prefix = "entry:"
		}

		line, err := formatInstr(addr, instr)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-8s%4d  %s\n", prefix, addr, line); err != nil {
			return err
		}
	}
	return nil
}

func formatInstr(addr int, instr Instr) (string, error) {
	switch instr.Op {
	case PushImmediate:
		if instr.Char != 0 {
			return fmt.Sprintf("%-16s %s %q", instr.Op, instr.Comb, instr.Char), nil
		}
		return fmt.Sprintf("%-16s %s", instr.Op, instr.Comb), nil
	case CheckSuspend, CheckDynamicSuspend:
		target := addr + int(instr.Off)
		return fmt.Sprintf("%-16s +%-4d -> %d", instr.Op, instr.Off, target), nil
	case Swap, Rot, Invoke, Finish:
		return instr.Op.String(), nil
	default:
		return "", fmt.Errorf("asm: unexpected opcode %s at %d", instr.Op, addr)
	}
}
