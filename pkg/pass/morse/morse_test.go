package morse

import (
	"image"
	"strings"
	"testing"

	"github.com/pion/videoproxy/pkg/paint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLines []string

func (s *scriptedLines) TryLine() (string, bool) {
	if len(*s) == 0 {
		return "", false
	}
	line := (*s)[0]
	*s = (*s)[1:]
	return line, true
}

// blink renders ticks frames and returns the light pattern, '#' for lit and '.' for dark.
func blink(t *testing.T, p *Pass, ticks int) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < ticks; i++ {
		frame := image.NewRGBA(image.Rect(0, 0, 320, 240))
		_, err := p.Render(frame, nil)
		require.NoError(t, err)
		if frame.RGBAAt(160, 140) == paint.Orange {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func TestBlinkPattern(t *testing.T) {
	testCases := map[string]string{
		// dot: 7 lit, 3 dark, pop, then the letter gap.
		"e": "#######" + "...." + strings.Repeat(".", 10),
		// dot then dash.
		"A": "#######...." + strings.Repeat("#", 19) + "....",
		"": strings.Repeat(".", 10),
		"1 ?": strings.Repeat(".", 10),
	}

	for input, expected := range testCases {
		t.Run(input, func(t *testing.T) {
			p := New(&scriptedLines{input})
			assert.Equal(t, expected, blink(t, p, len(expected)))
		})
	}
}

func TestQueueDrains(t *testing.T) {
	p := New(&scriptedLines{"et"})
	blink(t, p, 200)
	assert.Empty(t, p.queue)
	assert.Equal(t, -1, p.counter)
}

func TestEnqueue(t *testing.T) {
	p := New(&scriptedLines{})
	p.Enqueue("Sos!")
	assert.Equal(t, []int{1, 1, 1, -1, 3, 3, 3, -1, 1, 1, 1, -1}, p.queue)
}
