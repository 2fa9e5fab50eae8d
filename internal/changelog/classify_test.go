package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/changelog/internal/config"
	"github.com/ariel-frischer/changelog/internal/diag"
)

var testKinds = map[string]string{
	"feat":     "Features",
	"fix":      "Bug Fixes",
	"build.ci": "Continuous Integration",
	// decomposed: 'e' followed by U+0301 COMBINING ACUTE ACCENT
	"cafe\u0301": "Coffee",
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject    string
		scopes     []string
		policy     config.ScopePolicy
		wantOK     bool
		wantLabel  string
		wantKind   string
		wantScope  string
		wantDesc   string
		wantReason diag.Reason
		wantLevel  diag.Level
	}{
		"kind only": {
			subject: "feat: add login", wantOK: true,
			wantLabel: "Features", wantKind: "feat", wantDesc: "add login",
		},
		"scope allowed": {
			subject: "feat(api): add X", scopes: []string{"api"}, wantOK: true,
			wantLabel: "Features", wantKind: "feat", wantScope: "api", wantDesc: "add X",
		},
		"scope without allow-list": {
			subject: "fix(anything): y", wantOK: true,
			wantLabel: "Bug Fixes", wantKind: "fix", wantScope: "anything", wantDesc: "y",
		},
		"dotted kind": {
			subject: "build.ci: cache modules", wantOK: true,
			wantLabel: "Continuous Integration", wantKind: "build.ci", wantDesc: "cache modules",
		},
		"unicode text": {
			subject: "fix: corrige la récupération", wantOK: true,
			wantLabel: "Bug Fixes", wantKind: "fix", wantDesc: "corrige la récupération",
		},
		"decomposed text keeps combining marks": {
			subject: "fix: re\u0301cupe\u0301ration du cache", wantOK: true,
			wantLabel: "Bug Fixes", wantKind: "fix", wantDesc: "re\u0301cupe\u0301ration du cache",
		},
		"decomposed kind": {
			subject: "cafe\u0301: brew", wantOK: true,
			wantLabel: "Coffee", wantKind: "cafe\u0301", wantDesc: "brew",
		},
		"decomposed scope allowed": {
			subject: "feat(re\u0301seau): add proxy", scopes: []string{"re\u0301seau"}, wantOK: true,
			wantLabel: "Features", wantKind: "feat", wantScope: "re\u0301seau", wantDesc: "add proxy",
		},
		"connector punctuation": {
			subject: "fix(api\u203fv2): retry", wantOK: true,
			wantLabel: "Bug Fixes", wantKind: "fix", wantScope: "api\u203fv2", wantDesc: "retry",
		},
		"description keeps trailing punctuation": {
			subject: "fix: handle nil (again)!", wantOK: true,
			wantLabel: "Bug Fixes", wantKind: "fix", wantDesc: "handle nil (again)!",
		},
		"all sub-scopes allowed": {
			subject: "fix(api, db): z", scopes: []string{"api", "db"}, wantOK: true,
			wantLabel: "Bug Fixes", wantKind: "fix", wantScope: "api, db", wantDesc: "z",
		},
		"merge pull request": {
			subject: "Merge pull request #12 from x/y", wantReason: diag.ReasonMergeCommit, wantLevel: diag.LevelInfo,
		},
		"merge branch": {
			subject: "Merge branch 'main'", wantReason: diag.ReasonMergeCommit, wantLevel: diag.LevelInfo,
		},
		"merge branch that looks conventional": {
			subject: "Merge branch: feat", wantReason: diag.ReasonMergeCommit, wantLevel: diag.LevelInfo,
		},
		"no separator": {
			subject: "update readme", wantReason: diag.ReasonUnparseable, wantLevel: diag.LevelError,
		},
		"colon without space": {
			subject: "feat:add", wantReason: diag.ReasonUnparseable, wantLevel: diag.LevelError,
		},
		"grammar must start the subject": {
			subject: "[wip] feat: add", wantReason: diag.ReasonUnparseable, wantLevel: diag.LevelError,
		},
		"unknown kind": {
			subject: "chore: bump deps", wantReason: diag.ReasonUnknownKind, wantLevel: diag.LevelWarn,
		},
		"scope outside allow-list is rejected": {
			subject: "feat(web): x", scopes: []string{"api"}, policy: config.ScopePolicyReject,
			wantReason: diag.ReasonScopeMismatch, wantLevel: diag.LevelWarn,
		},
		"one sub-scope outside allow-list is rejected": {
			subject: "feat(api,web): x", scopes: []string{"api"},
			wantReason: diag.ReasonScopeMismatch, wantLevel: diag.LevelWarn,
		},
		"warn policy keeps the commit": {
			subject: "feat(web): x", scopes: []string{"api"}, policy: config.ScopePolicyWarn, wantOK: true,
			wantLabel: "Features", wantKind: "feat", wantScope: "web", wantDesc: "x",
			wantReason: diag.ReasonScopeMismatch, wantLevel: diag.LevelWarn,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var rec diag.Recorder
			policy := tt.policy
			if policy == "" {
				policy = config.ScopePolicyReject
			}
			c := NewClassifier(testKinds, tt.scopes, policy, &rec)

			commit := Commit{Hash: "abc1234", Message: tt.subject, Author: "Jane Doe", Date: "2024-03-01"}
			got, ok := c.Classify(commit)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantLabel, got.Label)
				assert.Equal(t, tt.wantKind, got.Commit.Kind)
				assert.Equal(t, tt.wantScope, got.Commit.Scope)
				assert.Equal(t, tt.wantDesc, got.Commit.Description)
				assert.Equal(t, tt.subject, got.Commit.Message, "message stays the full subject")
			}

			events := rec.Events()
			if tt.wantReason == "" {
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			assert.Equal(t, tt.wantReason, events[0].Reason)
			assert.Equal(t, tt.wantLevel, events[0].Level)
			assert.Equal(t, "abc1234", events[0].Hash)
			assert.Equal(t, tt.subject, events[0].Subject)
		})
	}
}

func TestClassify_LabelNotToken(t *testing.T) {
	t.Parallel()

	c := NewClassifier(map[string]string{"feat": "Features"}, nil, config.ScopePolicyReject, nil)
	got, ok := c.Classify(Commit{Message: "feat: x"})
	require.True(t, ok)
	assert.Equal(t, "Features", got.Label)
}
