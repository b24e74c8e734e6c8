package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axmq/mqtt5codec/encoding"
)

func mustFilter(t *testing.T, s string) encoding.TopicFilter {
	t.Helper()
	f, err := encoding.NewTopicFilter(s)
	require.NoError(t, err)
	return f
}

func mustTopic(t *testing.T, s string) encoding.Topic {
	t.Helper()
	tp, err := encoding.NewTopic(s)
	require.NoError(t, err)
	return tp
}

func TestTrieExactMatch(t *testing.T) {
	trie := NewTrie()
	trie.Subscribe(mustFilter(t, "sensors/temp"), SubscriberInfo{ClientID: "c1", QoS: encoding.QoS1})

	matches := trie.Match(mustTopic(t, "sensors/temp"))
	require.Len(t, matches, 1)
	assert.Equal(t, "c1", matches[0].ClientID)

	assert.Empty(t, trie.Match(mustTopic(t, "sensors/humidity")))
}

func TestTrieSingleLevelWildcard(t *testing.T) {
	trie := NewTrie()
	trie.Subscribe(mustFilter(t, "sensors/+/temp"), SubscriberInfo{ClientID: "c1"})

	assert.Len(t, trie.Match(mustTopic(t, "sensors/room1/temp")), 1)
	assert.Len(t, trie.Match(mustTopic(t, "sensors/room1/room2/temp")), 0)
}

func TestTrieMultiLevelWildcard(t *testing.T) {
	trie := NewTrie()
	trie.Subscribe(mustFilter(t, "sensors/#"), SubscriberInfo{ClientID: "c1"})

	assert.Len(t, trie.Match(mustTopic(t, "sensors/temp")), 1)
	assert.Len(t, trie.Match(mustTopic(t, "sensors/room1/temp")), 1)
	assert.Len(t, trie.Match(mustTopic(t, "sensors")), 1)
}

func TestTrieRootMultiLevelWildcard(t *testing.T) {
	trie := NewTrie()
	trie.Subscribe(mustFilter(t, "#"), SubscriberInfo{ClientID: "c1"})

	assert.Len(t, trie.Match(mustTopic(t, "a/b/c")), 1)
	assert.Len(t, trie.Match(mustTopic(t, "anything")), 1)
}

func TestTrieUnsubscribe(t *testing.T) {
	trie := NewTrie()
	filter := mustFilter(t, "a/b")
	trie.Subscribe(filter, SubscriberInfo{ClientID: "c1"})
	trie.Subscribe(filter, SubscriberInfo{ClientID: "c2"})

	require.True(t, trie.Unsubscribe(filter, "c1"))
	matches := trie.Match(mustTopic(t, "a/b"))
	require.Len(t, matches, 1)
	assert.Equal(t, "c2", matches[0].ClientID)

	assert.False(t, trie.Unsubscribe(filter, "c1"))
}

func TestTrieCountAndClear(t *testing.T) {
	trie := NewTrie()
	trie.Subscribe(mustFilter(t, "a"), SubscriberInfo{ClientID: "c1"})
	trie.Subscribe(mustFilter(t, "b"), SubscriberInfo{ClientID: "c2"})
	assert.Equal(t, 2, trie.Count())

	trie.Clear()
	assert.Equal(t, 0, trie.Count())
}

func TestTrieMultipleSubscribersSameFilter(t *testing.T) {
	trie := NewTrie()
	filter := mustFilter(t, "x/y")
	trie.Subscribe(filter, SubscriberInfo{ClientID: "c1", QoS: encoding.QoS0})
	trie.Subscribe(filter, SubscriberInfo{ClientID: "c2", QoS: encoding.QoS2})

	matches := trie.Match(mustTopic(t, "x/y"))
	assert.Len(t, matches, 2)
}
