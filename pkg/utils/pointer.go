package utils

func StringPtr(s string) *string {
	return &s
}

func IntPtr(i int) *int {
	return &i
}

func Uint64Ptr(v uint64) *uint64 {
	return &v
}

// StringValue returns "" for a nil pointer
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
