package postprocess

import (
	"testing"

	"github.com/nvr-ai/go-annotate/images"
	"github.com/stretchr/testify/assert"
)

func TestApplyGreedyNMS(t *testing.T) {
	detections := []Result{
		{Box: images.Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}, Score: 0.9, Class: 2},
		{Box: images.Rect{X1: 5, Y1: 5, X2: 105, Y2: 105}, Score: 0.8, Class: 2},
		{Box: images.Rect{X1: 5, Y1: 5, X2: 105, Y2: 105}, Score: 0.7, Class: 0},
		{Box: images.Rect{X1: 300, Y1: 300, X2: 400, Y2: 400}, Score: 0.6, Class: 2},
	}

	t.Run("class aware", func(t *testing.T) {
		got := ApplyGreedyNMS(detections, NMSConfig{IoUThreshold: 0.5, ClassAware: true})
		assert.Equal(t, []Result{detections[0], detections[2], detections[3]}, got)
	})

	t.Run("class agnostic", func(t *testing.T) {
		got := ApplyGreedyNMS(detections, NMSConfig{IoUThreshold: 0.5})
		assert.Equal(t, []Result{detections[0], detections[3]}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, ApplyGreedyNMS(nil, DefaultNMSConfig()))
	})
}

func TestSortByScore(t *testing.T) {
	detections := []Result{{Score: 0.4, Class: 1}, {Score: 0.9, Class: 2}, {Score: 0.4, Class: 3}}
	SortByScore(detections)
	assert.Equal(t, []int{2, 1, 3}, []int{detections[0].Class, detections[1].Class, detections[2].Class})
}
