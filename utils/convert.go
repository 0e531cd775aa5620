package utils

func AnyToString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func AnyToMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

func AnyToBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
