package cmd

import (
	"fmt"
	"io"

	"github.com/inference-sim/tasim/sim"
)

const studentPrompt = "Please enter the number of students being helped."

// readStudentCount prompts on out and reads one integer from in.
// Missing, non-numeric and negative input wrap sim.ErrConfiguration.
func readStudentCount(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprintf(out, "%s\n\n", studentPrompt)
	var n int
	if _, err := fmt.Fscan(in, &n); err != nil {
		return 0, fmt.Errorf("%w: reading student count: %v", sim.ErrConfiguration, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: student count must be non-negative, got %d", sim.ErrConfiguration, n)
	}
	return n, nil
}
