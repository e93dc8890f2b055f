package session

import "github.com/kshitij-139/GEM-JD/internal/model"

// FAQCache memoizes the FAQ text for a single JobIdentity. A new identity
// replaces the previous entry only once its generation succeeds.
//
// FAQCache is not safe for concurrent use; Session serializes access.
type FAQCache struct {
	identity model.JobIdentity
	text     string
	filled   bool
}

// GetOrGenerate returns the stored text when id matches the cached identity,
// without calling generate. Otherwise it calls generate once and, on success,
// stores the result in place of any previous entry. A failed generation leaves
// the cache exactly as it was.
func (c *FAQCache) GetOrGenerate(id model.JobIdentity, generate func() (string, error)) (text string, cached bool, err error) {
	if c.filled && c.identity == id {
		return c.text, true, nil
	}

	text, err = generate()
	if err != nil {
		return "", false, err
	}

	c.identity = id
	c.text = text
	c.filled = true
	return text, false, nil
}

// Peek returns the cached entry, if any.
func (c *FAQCache) Peek() (model.JobIdentity, string, bool) {
	return c.identity, c.text, c.filled
}

// Reset empties the cache.
func (c *FAQCache) Reset() {
	*c = FAQCache{}
}
