// Package topic is a minimal reference consumer of the codec's Topic and
// TopicFilter value types: a trie-based matcher that shows how a broker
// would route a decoded Publish to its subscribers. It is not part of the
// codec and holds the mutable, concurrent state the codec itself refuses
// to hold.
package topic

import (
	"strings"
	"sync"

	"github.com/axmq/mqtt5codec/encoding"
)

// SubscriberInfo identifies one subscriber at a trie node.
type SubscriberInfo struct {
	ClientID string
	QoS      encoding.QoS
}

type trieNode struct {
	children    map[string]*trieNode
	subscribers []SubscriberInfo
	mu          sync.RWMutex
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// Trie implements a trie-based topic filter matcher over MQTT topic
// levels.
type Trie struct {
	root *trieNode
	mu   sync.RWMutex
}

// NewTrie creates an empty topic trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

func splitLevels(topic string) []string {
	return strings.Split(topic, "/")
}

// Subscribe adds sub at filter's position in the trie.
func (t *Trie) Subscribe(filter encoding.TopicFilter, sub SubscriberInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.navigateToNode(filter.String())
	node.mu.Lock()
	node.subscribers = append(node.subscribers, sub)
	node.mu.Unlock()
}

// navigateToNode traverses the trie to find or create the node for filter.
// Caller must hold t.mu.
func (t *Trie) navigateToNode(filter string) *trieNode {
	node := t.root
	for _, level := range splitLevels(filter) {
		node.mu.Lock()
		if node.children[level] == nil {
			node.children[level] = newTrieNode()
		}
		next := node.children[level]
		node.mu.Unlock()
		node = next
	}
	return node
}

// Unsubscribe removes clientID's subscription at filter, reporting whether
// one was found.
func (t *Trie) Unsubscribe(filter encoding.TopicFilter, clientID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	levels := splitLevels(filter.String())
	return t.unsubscribeRecursive(t.root, levels, clientID, 0)
}

func (t *Trie) unsubscribeRecursive(node *trieNode, levels []string, clientID string, depth int) bool {
	if depth == len(levels) {
		node.mu.Lock()
		defer node.mu.Unlock()
		for i, sub := range node.subscribers {
			if sub.ClientID == clientID {
				node.subscribers = append(node.subscribers[:i], node.subscribers[i+1:]...)
				return true
			}
		}
		return false
	}

	level := levels[depth]
	node.mu.RLock()
	child := node.children[level]
	node.mu.RUnlock()
	if child == nil {
		return false
	}

	found := t.unsubscribeRecursive(child, levels, clientID, depth+1)
	if found && t.shouldPruneNode(child) {
		node.mu.Lock()
		delete(node.children, level)
		node.mu.Unlock()
	}
	return found
}

// Match returns every subscriber whose filter matches topic.
func (t *Trie) Match(topic encoding.Topic) []SubscriberInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	levels := splitLevels(topic.String())
	subscribers := make([]SubscriberInfo, 0, 16)
	t.matchRecursive(t.root, levels, 0, &subscribers)
	return subscribers
}

func (t *Trie) matchRecursive(node *trieNode, levels []string, depth int, subscribers *[]SubscriberInfo) {
	node.mu.RLock()
	defer node.mu.RUnlock()

	if multiNode := node.children["#"]; multiNode != nil {
		multiNode.mu.RLock()
		*subscribers = append(*subscribers, multiNode.subscribers...)
		multiNode.mu.RUnlock()
	}

	if depth == len(levels) {
		*subscribers = append(*subscribers, node.subscribers...)
		return
	}

	level := levels[depth]
	if exact := node.children[level]; exact != nil {
		t.matchRecursive(exact, levels, depth+1, subscribers)
	}
	if plus := node.children["+"]; plus != nil {
		t.matchRecursive(plus, levels, depth+1, subscribers)
	}
}

func (t *Trie) shouldPruneNode(node *trieNode) bool {
	node.mu.RLock()
	defer node.mu.RUnlock()
	return len(node.subscribers) == 0 && len(node.children) == 0
}

// Clear removes every subscription from the trie.
func (t *Trie) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = newTrieNode()
}

// Count returns the total number of subscriptions held in the trie.
func (t *Trie) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.countRecursive(t.root)
}

func (t *Trie) countRecursive(node *trieNode) int {
	node.mu.RLock()
	defer node.mu.RUnlock()

	count := len(node.subscribers)
	for _, child := range node.children {
		count += t.countRecursive(child)
	}
	return count
}
