package sim

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummary_Print_ListsEveryStudent(t *testing.T) {
	// GIVEN a summary with one helped and one unhelped student
	s := &Summary{
		Elapsed: 1500 * time.Millisecond,
		Outcomes: []Outcome{
			{StudentID: 1, Helped: true},
			{StudentID: 2, Helped: false},
		},
	}

	// WHEN printed
	var buf bytes.Buffer
	s.Print(&buf)

	// THEN each student gets a line in ID order
	want := "Help Summary:\n" +
		"Student 1: Helped\n" +
		"Student 2: Not Helped\n" +
		"Helped 1 of 2 students in 1.5s\n"
	assert.Equal(t, want, buf.String())
}

func TestSummary_HelpedAndNotHelpedPartitionOutcomes(t *testing.T) {
	s := &Summary{Outcomes: []Outcome{
		{StudentID: 1, Helped: false},
		{StudentID: 2, Helped: true},
		{StudentID: 3, Helped: true},
	}}

	assert.Equal(t, []int{2, 3}, s.HelpedIDs())
	assert.Equal(t, []int{1}, s.NotHelpedIDs())
	assert.False(t, s.AllHelped())
}
