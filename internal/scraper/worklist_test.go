package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorklistDeduplicates(t *testing.T) {
	w := NewWorklist()
	w.Add("a")
	w.Add("b")
	w.Add("a")

	assert.Equal(t, 2, w.Seen())

	var drained []string
	for w.HasNext() {
		drained = append(drained, w.Next())
	}
	assert.Equal(t, []string{"a", "b"}, drained)
}

func TestWorklistFIFOOrder(t *testing.T) {
	w := NewWorklist()
	w.Add("first")
	w.Add("second")

	assert.True(t, w.HasNext())
	assert.Equal(t, "first", w.Next())
	assert.Equal(t, "second", w.Next())
	assert.False(t, w.HasNext())
}

func TestWorklistExtendWhileDraining(t *testing.T) {
	w := NewWorklist()
	w.Add("a")

	var processed []string
	for w.HasNext() {
		link := w.Next()
		processed = append(processed, link)
		if link == "a" {
			w.Add("b")
			w.Add("a") // re-adding a processed link must not loop
		}
	}

	assert.Equal(t, []string{"a", "b"}, processed)
}
