package debug

// Assert panics with the given message if the condition does not hold.
// Broken invariants here are programming errors: the proof pipeline must
// abort rather than emit a proof whose soundness cannot be guaranteed.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) > 0 {
			panic("lasso: " + message[0])
		}
		panic("lasso: assertion failed")
	}
}
