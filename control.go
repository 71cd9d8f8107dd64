package videoproxy

// Control keys, as character codes.
const (
	KeyAll  = '-'
	KeyNone = '`'
	KeyPIP  = 'p'
)

// controlState is the part of the scheduler state that control keys change.
type controlState struct {
	mask Mask
	pip  bool
}

// apply interprets key as a control key. It reports whether key was one.
func (s *controlState) apply(key int) bool {
	switch {
	case key == KeyAll:
		s.mask = MaskAll
	case key == KeyNone:
		s.mask = MaskNone
	case key >= '0' && key <= '9':
		s.mask = s.mask.Toggle(key - '0')
	case key == KeyPIP:
		s.pip = !s.pip
	default:
		return false
	}
	return true
}
