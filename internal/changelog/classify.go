package changelog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ariel-frischer/changelog/internal/config"
	"github.com/ariel-frischer/changelog/internal/diag"
)

// subjectPattern matches "kind(scope): text" at the start of a subject.
// Each part is drawn from letters, combining marks, digits, connector
// punctuation such as '_', space, '-', '.', '/' and '\'. Combining marks keep
// decomposed text like "cafe\u0301" whole. The scope additionally accepts ','
// to list several sub-scopes.
var subjectPattern = regexp.MustCompile(
	`^(?P<kind>[\p{L}\p{M}\p{N}\p{Pc} \-./\\]+)(?:\((?P<scope>[\p{L}\p{M}\p{N}\p{Pc} ,\-./\\]+)\))?: (?P<text>[\p{L}\p{M}\p{N}\p{Pc} \-./\\]+)`,
)

var (
	kindGroup  = subjectPattern.SubexpIndex("kind")
	scopeGroup = subjectPattern.SubexpIndex("scope")
	textGroup  = subjectPattern.SubexpIndex("text")
)

// mergePrefixes mark subjects generated by merges.
var mergePrefixes = []string{"Merge pull request", "Merge branch"}

// Classification is an accepted commit and the label of the bucket it goes to.
type Classification struct {
	Label  string
	Commit Commit
}

// Classifier decides, for one repository, which commits make it into the
// changelog and under which label. Every rejection is reported to the sink.
type Classifier struct {
	kinds  map[string]string
	scopes map[string]struct{}
	policy config.ScopePolicy
	sink   diag.Sink
}

// NewClassifier returns a classifier for the given kind labels and scope
// allow-list. An empty scope list accepts any scope.
func NewClassifier(kinds map[string]string, scopes []string, policy config.ScopePolicy, sink diag.Sink) *Classifier {
	c := &Classifier{
		kinds:  kinds,
		policy: policy,
		sink:   diag.OrDiscard(sink),
	}
	if len(scopes) > 0 {
		c.scopes = make(map[string]struct{}, len(scopes))
		for _, s := range scopes {
			c.scopes[s] = struct{}{}
		}
	}
	return c
}

// Classify parses the subject of commit. It returns false when the commit is
// a merge, does not follow the grammar, has an unknown kind, or (under the
// reject policy) names a scope outside the allow-list.
func (c *Classifier) Classify(commit Commit) (Classification, bool) {
	subject := commit.Message

	if isMerge(subject) {
		c.report(commit, diag.LevelInfo, diag.ReasonMergeCommit, "skip merge commit", "", "")
		return Classification{}, false
	}

	m := subjectPattern.FindStringSubmatchIndex(subject)
	if m == nil {
		c.report(commit, diag.LevelError, diag.ReasonUnparseable, "could not parse the message", "", "")
		return Classification{}, false
	}

	kind := subject[m[2*kindGroup]:m[2*kindGroup+1]]
	var scope string
	if m[2*scopeGroup] >= 0 {
		scope = subject[m[2*scopeGroup]:m[2*scopeGroup+1]]
	}

	label, ok := c.kinds[kind]
	if !ok {
		c.report(commit, diag.LevelWarn, diag.ReasonUnknownKind, "kind is not contained in provided kinds", kind, scope)
		return Classification{}, false
	}

	if scope != "" && c.scopes != nil {
		if outside := c.outsideScopes(scope); len(outside) > 0 {
			msg := fmt.Sprintf("scope %s not contained in provided scopes", strings.Join(outside, ", "))
			c.report(commit, diag.LevelWarn, diag.ReasonScopeMismatch, msg, kind, scope)
			if c.policy != config.ScopePolicyWarn {
				return Classification{}, false
			}
		}
	}

	commit.Kind = kind
	commit.Scope = scope
	commit.Description = strings.TrimSpace(subject[m[2*textGroup]:])
	return Classification{Label: label, Commit: commit}, true
}

// outsideScopes returns the comma separated sub-scopes of scope that are not allowed.
func (c *Classifier) outsideScopes(scope string) []string {
	var outside []string
	for _, sub := range strings.Split(scope, ",") {
		sub = strings.TrimSpace(sub)
		if _, ok := c.scopes[sub]; !ok {
			outside = append(outside, fmt.Sprintf("%q", sub))
		}
	}
	return outside
}

func (c *Classifier) report(commit Commit, level diag.Level, reason diag.Reason, msg, kind, scope string) {
	c.sink.Emit(diag.Event{
		Level:   level,
		Reason:  reason,
		Message: msg,
		Hash:    commit.Hash,
		Kind:    kind,
		Scope:   scope,
		Subject: commit.Message,
	})
}

func isMerge(subject string) bool {
	for _, p := range mergePrefixes {
		if strings.HasPrefix(subject, p) {
			return true
		}
	}
	return false
}
