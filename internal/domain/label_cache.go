package domain

// LabelCache maps a referenced object's API name to its label. One instance
// serves one target object: it is filled before projection and only read
// afterwards.
type LabelCache struct {
	labels map[string]string
}

func NewLabelCache() *LabelCache {
	return &LabelCache{labels: make(map[string]string)}
}

func (c *LabelCache) Set(objectName, label string) {
	c.labels[objectName] = label
}

// Label returns the cached label. An empty cached label counts as absent.
func (c *LabelCache) Label(objectName string) (string, bool) {
	if c == nil {
		return "", false
	}
	l, ok := c.labels[objectName]
	if !ok || l == "" {
		return "", false
	}
	return l, true
}

func (c *LabelCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.labels)
}

// Snapshot returns a copy of the cached entries.
func (c *LabelCache) Snapshot() map[string]string {
	out := make(map[string]string, c.Len())
	if c == nil {
		return out
	}
	for k, v := range c.labels {
		out[k] = v
	}
	return out
}
