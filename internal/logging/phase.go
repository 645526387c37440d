package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	phaseSpinner   *pterm.SpinnerPrinter
	currentPhase   string
	phaseStartTime time.Time
)

const maxPhaseLength = len("resolving")

// BeginPhase starts a spinner for one pipeline stage (loading stdlib,
// parsing, resolving, emitting).
func BeginPhase(phase string) {
	if logger == nil || logger.level < LogLevelVerbose {
		return
	}
	currentPhase = phase
	pad := maxPhaseLength - len(phase) + 2
	if pad < 0 {
		pad = 0
	}
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: SuccessStyleBG, Text: "Done"},
	}
	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: ErrorStyleBG, Text: "Fail"},
	}
	phaseSpinner.Start(phase + "..." + strings.Repeat(" ", pad))
	phaseStartTime = time.Now()
}

// EndPhase closes the active spinner, if any.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}
	pad := maxPhaseLength - len(currentPhase) + 2
	if pad < 0 {
		pad = 0
	}
	if success {
		phaseSpinner.Success(currentPhase+strings.Repeat(" ", pad), fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()))
	} else {
		phaseSpinner.Fail(currentPhase + strings.Repeat(" ", pad))
	}
	phaseSpinner = nil
}

// Finished prints the closing summary line.
func Finished() {
	if logger == nil || logger.level <= LogLevelSilent {
		return
	}
	success := logger.errorCount == 0
	fmt.Print("\n")
	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}
	fmt.Printf("(%d error(s), %d warning(s))\n", logger.errorCount, logger.warnCount)
}
