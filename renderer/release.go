package renderer

// releaseStack collects teardown steps as resources are acquired and runs
// them in reverse order.
type releaseStack []func()

func (s *releaseStack) push(f func()) {
	*s = append(*s, f)
}

func (s *releaseStack) run() {
	for i := len(*s) - 1; i >= 0; i-- {
		(*s)[i]()
	}
	*s = nil
}
