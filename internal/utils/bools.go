package utils

// IsTrue reports whether a config string switches a flag on. Only the exact
// string "True" does; "true", "1" and "yes" do not.
func IsTrue(s string) bool {
	return s == "True"
}
