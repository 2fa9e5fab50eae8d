package git

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/changelog/internal/diag"
)

// TagIndex maps the full hash of a tagged commit to the release name.
type TagIndex map[string]string

// Lookup returns the release name recorded for hash.
func (t TagIndex) Lookup(hash string) (string, bool) {
	name, ok := t[hash]
	return name, ok
}

// TagIndex scans every tag of the repository and records
// annotation.target -> annotation.name for annotated tags.
//
// Tags are visited in name order. A lightweight tag is skipped and reported
// with diag.ReasonLightweightTag. When two annotated tags target the same
// commit, the later name wins and diag.ReasonDuplicateTag is emitted.
func (r *Repository) TagIndex(sink diag.Sink) (TagIndex, error) {
	sink = diag.OrDiscard(sink)

	refs, err := r.tagReferences()
	if err != nil {
		return nil, err
	}

	index := make(TagIndex, len(refs))
	for _, ref := range refs {
		name := ref.Name().Short()

		annotation, err := r.annotation(ref)
		if err != nil {
			return nil, err
		}
		if annotation == nil {
			sink.Emit(diag.Event{
				Level:   diag.LevelWarn,
				Reason:  diag.ReasonLightweightTag,
				Message: "tag has no annotation object, not a release boundary",
				Tag:     name,
				Hash:    short(ref.Hash().String()),
			})
			continue
		}

		target := annotation.Target.String()
		if previous, ok := index[target]; ok {
			sink.Emit(diag.Event{
				Level:   diag.LevelWarn,
				Reason:  diag.ReasonDuplicateTag,
				Message: fmt.Sprintf("commit already tagged %q, using %q", previous, annotation.Name),
				Tag:     annotation.Name,
				Hash:    short(target),
			})
		}
		index[target] = annotation.Name
	}

	logDebug("[git] TagIndex: %d release boundaries from %d tags", len(index), len(refs))
	return index, nil
}

// tagReferences lists tag references sorted by name.
func (r *Repository) tagReferences() ([]*plumbing.Reference, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("%w: listing tags: %v", ErrTagEnumeration, err)
	}
	defer iter.Close()

	var refs []*plumbing.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		refs = append(refs, ref)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: iterating tags: %v", ErrTagEnumeration, err)
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Name().Short() < refs[j].Name().Short()
	})
	return refs, nil
}

// annotation returns the tag object a reference points to, or nil when the
// reference points directly at a non-tag object.
func (r *Repository) annotation(ref *plumbing.Reference) (*object.Tag, error) {
	obj, err := r.repo.Storer.EncodedObject(plumbing.AnyObject, ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w: resolving tag %s: %v", ErrTagEnumeration, ref.Name().Short(), err)
	}
	if obj.Type() != plumbing.TagObject {
		return nil, nil
	}

	tag, err := object.DecodeTag(r.repo.Storer, obj)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding tag %s: %v", ErrTagEnumeration, ref.Name().Short(), err)
	}
	return tag, nil
}

func short(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
