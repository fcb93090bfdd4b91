package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/rivo/tview"
)

// listingSize is the number of instructions shown starting at the PC.
const listingSize = 8

// view contains the widgets and the state they render. All fields are only
// accessed on the application goroutine.
type view struct {
	root    *tview.Flex
	display *tview.Box
	info    *tview.TextView

	framebuffer [machine.DisplayWidth * machine.DisplayHeight]uint8
	sound       bool
	beeping     bool
}

func newView() *view {
	v := &view{}

	v.display = tview.NewBox()
	v.display.SetBorder(true).SetTitle(" CHIP-8 ")
	v.display.SetDrawFunc(v.drawDisplay)

	v.info = tview.NewTextView().SetDynamicColors(true)
	v.info.SetBorder(true).SetTitle(" Machine ")

	help := tview.NewTextView().SetText(helpText())
	help.SetBorder(true).SetTitle(" Keys ")

	top := tview.NewFlex().
		AddItem(v.display, machine.DisplayWidth+2, 0, false).
		AddItem(v.info, 0, 1, false)

	v.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, machine.DisplayHeight/2+2, 0, false).
		AddItem(help, 0, 1, false)
	return v
}

// update copies the machine state into the view.
func (v *view) update(r *runner.Runner, runErr error) {
	var state machine.State
	r.View(func(m *machine.Machine) {
		state = m.Snapshot()
	})

	v.framebuffer = state.Framebuffer
	v.sound = state.SoundTimer > 0
	v.info.SetText(formatState(state, r.Paused(), runErr, r.Stats()))
}

// beep rings the terminal bell when the sound timer becomes active.
func (v *view) beep(screen tcell.Screen) bool {
	if v.sound && !v.beeping {
		_ = screen.Beep()
	}
	v.beeping = v.sound
	return false
}

func (v *view) drawDisplay(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	// inside of the border
	x, y, width, height = x+1, y+1, width-2, height-2
	drawFramebuffer(screen, v.framebuffer[:], x, y, width, height)
	return x, y, width, height
}

// drawFramebuffer renders two display rows per terminal row.
func drawFramebuffer(screen tcell.Screen, framebuffer []uint8, x, y, width, height int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)

	for row := 0; row < machine.DisplayHeight/2 && row < height; row++ {
		upper := framebuffer[2*row*machine.DisplayWidth:]
		lower := framebuffer[(2*row+1)*machine.DisplayWidth:]

		for col := 0; col < machine.DisplayWidth && col < width; col++ {
			glyph := blockGlyph(upper[col] != 0, lower[col] != 0)
			screen.SetContent(x+col, y+row, glyph, nil, style)
		}
	}
}

func blockGlyph(upper, lower bool) rune {
	switch {
	case upper && lower:
		return '█'
	case upper:
		return '▀'
	case lower:
		return '▄'
	default:
		return ' '
	}
}

func formatState(state machine.State, paused bool, runErr error, stats runner.Stats) string {
	var sb strings.Builder

	status := "running"
	switch {
	case errors.Is(runErr, runner.ErrCycleLimit):
		status = "[yellow]cycle limit reached[-]"
	case runErr != nil:
		status = fmt.Sprintf("[red]halted: %s[-]", tview.Escape(runErr.Error()))
	case paused:
		status = "[yellow]paused[-]"
	}
	fmt.Fprintf(&sb, "Status  %s\n\n", status)

	fmt.Fprintf(&sb, "PC $%03X  I $%03X  SP %d\n", state.PC, state.I, state.SP)
	fmt.Fprintf(&sb, "DT %02X    ST %02X\n\n", state.DelayTimer, state.SoundTimer)

	for i, value := range state.V {
		fmt.Fprintf(&sb, "V%X %02X", i, value)
		if i%4 == 3 {
			sb.WriteByte('\n')
		} else {
			sb.WriteString("  ")
		}
	}
	sb.WriteByte('\n')

	for i := range listingSize {
		address := (state.PC + uint16(2*i)) & (machine.MemorySize - 1)
		opcode := uint16(state.Memory[address])<<8 | uint16(state.Memory[(address+1)&(machine.MemorySize-1)])

		marker := " "
		if i == 0 {
			marker = ">"
		}
		fmt.Fprintf(&sb, "%s $%03X  %04X  %s\n", marker, address, opcode, tview.Escape(disasm.Decode(opcode).String()))
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Instructions %d  Faults %d  Unknown %d\n",
		stats.Instructions, stats.Faults, stats.UnknownOpcodes)
	return sb.String()
}

func helpText() string {
	var sb strings.Builder

	sb.WriteString("Keypad mapping\n")
	for row := range 4 {
		bindings := keymap.Bindings[row*4 : row*4+4]
		for _, b := range bindings {
			fmt.Fprintf(&sb, "%c ", b.Rune)
		}
		sb.WriteString(" ->  ")
		for _, b := range bindings {
			fmt.Fprintf(&sb, "%X ", b.Key)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\nSpace pause/resume   N single step   Esc quit\n")
	return sb.String()
}
