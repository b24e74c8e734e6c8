package encoding

import "testing"

func mustTopic(t *testing.T, s string) Topic {
	t.Helper()
	topic, err := NewTopic(s)
	if err != nil {
		t.Fatalf("NewTopic(%q): %v", s, err)
	}
	return topic
}

func mustTopicFilter(t *testing.T, s string) TopicFilter {
	t.Helper()
	filter, err := NewTopicFilter(s)
	if err != nil {
		t.Fatalf("NewTopicFilter(%q): %v", s, err)
	}
	return filter
}
