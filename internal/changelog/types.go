package changelog

// Changelog is the root of the document tree handed to renderers.
// Repositories keep the order of the configuration.
type Changelog struct {
	Repositories []Repository `json:"repositories" yaml:"repositories"`
}

// Repository is the output of one configured repository.
// Tags are stored newest first.
type Repository struct {
	Name string `json:"name" yaml:"name"`
	Tags []Tag  `json:"tags" yaml:"tags"`
}

// Tag is one release group: the commits between the previous release
// boundary (exclusive) and this one (inclusive), grouped by kind label.
type Tag struct {
	Name  string      `json:"name" yaml:"name"`
	Kinds []KindGroup `json:"kinds" yaml:"kinds"`
}

// KindGroup holds the commits of one kind label, oldest first.
type KindGroup struct {
	Label   string   `json:"label" yaml:"label"`
	Commits []Commit `json:"commits" yaml:"commits"`
}

// Commit is one normalized historical change.
type Commit struct {
	// Hash is the 7-character display form of the commit hash.
	Hash string `json:"hash" yaml:"hash"`
	// Message is the subject line of the commit.
	Message string `json:"message" yaml:"message"`
	Author  string `json:"author" yaml:"author"`
	// Date is the UTC commit date formatted as YYYY-MM-DD.
	Date string `json:"date" yaml:"date"`
	// Link is built from the repository link template with the full hash.
	// Empty when no template is configured.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// Kind, Scope and Description are filled in by the classifier.
	Kind        string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Scope       string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Count returns the number of commits across all kind groups.
func (t Tag) Count() int {
	n := 0
	for _, g := range t.Kinds {
		n += len(g.Commits)
	}
	return n
}

// Tag returns the release group with the given name.
func (r Repository) Tag(name string) (Tag, bool) {
	for _, t := range r.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Repository returns the repository result with the given name.
func (c *Changelog) Repository(name string) (Repository, bool) {
	for _, r := range c.Repositories {
		if r.Name == name {
			return r, true
		}
	}
	return Repository{}, false
}

// buckets accumulates accepted commits by kind label, preserving the order in
// which labels are first seen.
type buckets struct {
	groups []KindGroup
	index  map[string]int
}

func newBuckets() *buckets {
	return &buckets{index: make(map[string]int)}
}

func (b *buckets) add(label string, c Commit) {
	i, ok := b.index[label]
	if !ok {
		i = len(b.groups)
		b.index[label] = i
		b.groups = append(b.groups, KindGroup{Label: label})
	}
	b.groups[i].Commits = append(b.groups[i].Commits, c)
}

func (b *buckets) empty() bool {
	return len(b.groups) == 0
}

// flush closes the current buckets into a Tag named name and starts over.
func (b *buckets) flush(name string) Tag {
	tag := Tag{Name: name, Kinds: b.groups}
	b.groups = nil
	b.index = make(map[string]int)
	return tag
}
