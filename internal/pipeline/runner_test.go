package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/graph"
	"github.com/dusk-indust/frontgen/internal/scaffold"
)

func newRepo(t *testing.T) *scaffold.Repo {
	t.Helper()
	repo, err := scaffold.NewRepo(t.TempDir())
	require.NoError(t, err)
	return repo
}

// staticProducer returns each artifact's fallback body.
var staticProducer = ProducerFunc(func(_ context.Context, art Artifact) (string, Tier) {
	return art.Fallback(), TierStatic
})

func body(s string) func() string {
	return func() string { return s }
}

func TestRunner_SequentialPlanOrder(t *testing.T) {
	repo := newRepo(t)
	plan := Plan{
		Framework: "react",
		Dirs:      []string{"src/components", "public"},
		Artifacts: []Artifact{
			{Path: "package.json", Fallback: body("{}\n")},
			{Path: "src/main.tsx", Fallback: body("export {}\n")},
			{Path: ".gitignore", Fallback: body("node_modules/\n")},
		},
	}

	res, err := NewRunner(staticProducer).Run(context.Background(), repo, plan)
	require.NoError(t, err)

	assert.Equal(t, []string{"package.json", "src/main.tsx", ".gitignore"}, res.Files)
	assert.Equal(t, []string{"package.json", "src/main.tsx", ".gitignore"}, plan.Paths())
	assert.Equal(t, TierStatic, res.Sources["src/main.tsx"])
	assert.Equal(t, 3, res.Changes.Created)
	assert.DirExists(t, filepath.Join(repo.Root(), "public"))

	data, err := os.ReadFile(filepath.Join(repo.Root(), "src", "main.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "export {}\n", string(data))
}

func TestRunner_RerunIsUnchanged(t *testing.T) {
	repo := newRepo(t)
	plan := Plan{Framework: "vue", Artifacts: []Artifact{{Path: "a.txt", Fallback: body("a")}}}
	runner := NewRunner(staticProducer)

	_, err := runner.Run(context.Background(), repo, plan)
	require.NoError(t, err)
	res, err := runner.Run(context.Background(), repo, plan)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changes.Unchanged)
}

func TestRunner_ParallelKeepsPlanOrder(t *testing.T) {
	repo := newRepo(t)
	var active, peak atomic.Int32
	producer := ProducerFunc(func(_ context.Context, art Artifact) (string, Tier) {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		// Later artifacts finish first.
		d := time.Duration(10-len(art.Path)) * 5 * time.Millisecond
		time.Sleep(d)
		return art.Path, TierGenerated
	})

	var plan Plan
	for _, p := range []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff"} {
		plan.Add(Artifact{Path: p})
	}

	res, err := NewRunner(producer, WithParallelism(3)).Run(context.Background(), repo, plan)
	require.NoError(t, err)
	assert.Equal(t, plan.Paths(), res.Files)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	for _, p := range plan.Paths() {
		assert.Equal(t, TierGenerated, res.Sources[p])
	}
}

func TestRunner_WriteFailureKeepsEarlierFiles(t *testing.T) {
	repo := newRepo(t)
	plan := Plan{
		Framework: "nextjs",
		Artifacts: []Artifact{
			{Path: "first.txt", Fallback: body("1")},
			{Path: "../escape.txt", Fallback: body("2")},
			{Path: "third.txt", Fallback: body("3")},
		},
	}

	res, err := NewRunner(staticProducer).Run(context.Background(), repo, plan)
	require.Error(t, err)
	assert.Equal(t, errs.KindFileSystem, errs.KindOf(err))
	require.NotNil(t, res)
	assert.Equal(t, []string{"first.txt"}, res.Files)
	assert.FileExists(t, filepath.Join(repo.Root(), "first.txt"))
	assert.NoFileExists(t, filepath.Join(repo.Root(), "third.txt"))
}

func TestRunner_ScaffoldFailure(t *testing.T) {
	repo := newRepo(t)
	_, err := NewRunner(staticProducer).Run(context.Background(), repo, Plan{Dirs: []string{"../out"}})
	require.Error(t, err)
	assert.Equal(t, errs.KindFileSystem, errs.KindOf(err))
}

func TestRunner_AnnotatesCode(t *testing.T) {
	repo := newRepo(t)
	plan := Plan{
		Framework: "react",
		Artifacts: []Artifact{
			{Path: "src/bad.ts", Language: "typescript", Fallback: body("export function f() {\n")},
			{Path: "src/good.ts", Language: "typescript", Fallback: body("export const x = 1\n")},
			{Path: "README.md", Fallback: body("{")},
		},
	}

	res, err := NewRunner(staticProducer, WithSyntaxChecker(graph.NewTreeSitterParser())).Run(context.Background(), repo, plan)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	for _, w := range res.Warnings {
		assert.Contains(t, w, "src/bad.ts")
	}
	assert.Len(t, res.Files, 3)
}

func TestRunner_CoherenceWarnings(t *testing.T) {
	repo := newRepo(t)
	plan := Plan{
		Framework: "react",
		Artifacts: []Artifact{
			{Path: "package.json", Fallback: body(`{"name":"x","version":"0.0.0","dependencies":{"react":"^18.2.0"}}`)},
			{Path: "src/App.tsx", Fallback: body("import React from 'react'\nimport { Header } from '@/components/Header'\nimport { Missing } from './Missing'\nexport default function App() { return <Header /> }\n")},
			{Path: "src/components/Header.tsx", Fallback: body("export const Header = () => <header />\n")},
		},
	}

	res, err := NewRunner(staticProducer, WithCoherence(graph.NewTreeSitterParser())).Run(context.Background(), repo, plan)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "./Missing")
}

func TestRunner_Cancelled(t *testing.T) {
	repo := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	plan := Plan{Artifacts: []Artifact{{Path: "a", Fallback: body("a")}}}

	_, err := NewRunner(staticProducer).Run(ctx, repo, plan)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(repo.Root(), "a"))
}

func TestRunner_ProducerPanicFailsRun(t *testing.T) {
	for _, n := range []int{1, 4} {
		repo := newRepo(t)
		panicky := ProducerFunc(func(_ context.Context, art Artifact) (string, Tier) {
			if art.Path == "b" {
				var m map[string]int
				m["x"] = 1
			}
			return art.Fallback(), TierStatic
		})
		plan := Plan{Artifacts: []Artifact{
			{Path: "a", Fallback: body("a")},
			{Path: "b", Fallback: body("b")},
		}}

		var mu sync.Mutex
		var failed []string
		progress := func(ev ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			if ev.Status == ProgressFailed {
				failed = append(failed, ev.Artifact)
			}
		}

		_, err := NewRunner(panicky, WithParallelism(n), WithProgress(progress)).Run(context.Background(), repo, plan)
		require.Error(t, err)
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
		assert.Contains(t, err.Error(), "produce b")
		assert.Equal(t, []string{"b"}, failed)
		assert.NoFileExists(t, filepath.Join(repo.Root(), "a"))
	}
}

func TestRunner_ProgressEvents(t *testing.T) {
	repo := newRepo(t)
	var mu sync.Mutex
	counts := map[ProgressStatus]int{}
	runner := NewRunner(staticProducer, WithProgress(func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		counts[ev.Status]++
	}))
	plan := Plan{Framework: "vue", Artifacts: []Artifact{
		{Path: "a", Fallback: body("a")},
		{Path: "b", Fallback: body("b")},
	}}

	_, err := runner.Run(context.Background(), repo, plan)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[ProgressPending])
	assert.Equal(t, 2, counts[ProgressWorking])
	assert.Equal(t, 2, counts[ProgressComplete])
}

func TestProgressReporter_EmitWhenFullDoesNotBlock(t *testing.T) {
	pr := NewProgressReporter()
	defer pr.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			pr.Emit(ProgressEvent{Artifact: "a", Status: ProgressWorking})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked when the channel was full")
	}
	assert.Len(t, pr.Subscribe(), 64)
}

func TestFormatProgress(t *testing.T) {
	assert.True(t, strings.HasSuffix(FormatProgress(ProgressEvent{Artifact: "a", Status: ProgressComplete, Tier: TierStatic}), "a (static)"))
	assert.Contains(t, FormatProgress(ProgressEvent{Artifact: "a", Status: ProgressFailed, Message: "boom"}), "failed: boom")
	assert.Contains(t, FormatProgress(ProgressEvent{Artifact: "a", Status: ProgressPending}), "pending")
}
