package github_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/vinisman/ghctl/internal/github"
	"github.com/vinisman/ghctl/internal/models"
)

func TestAsyncDeliversExactlyOnce(t *testing.T) {
	rt := &recordingTransport{respond: respondWith(http.StatusOK, "["+repoBody("one")+"]")}
	c := newTestClient(t, "token", rt)

	ch := github.Async(context.Background(), c.ListRepositories)
	out, ok := <-ch
	if !ok {
		t.Fatal("channel closed without an outcome")
	}
	if !out.OK() || out.Kind() != github.KindSuccess {
		t.Fatalf("outcome = %+v, want success", out)
	}
	if len(out.Value) != 1 || out.Value[0].Name != "one" {
		t.Errorf("outcome value = %+v", out.Value)
	}
	if _, ok := <-ch; ok {
		t.Error("channel yielded a second outcome")
	}
}

func TestAsyncDeleteFailure(t *testing.T) {
	rt := &recordingTransport{respond: respondWith(http.StatusForbidden, `{"message":"Must have admin rights to Repository."}`)}
	c := newTestClient(t, "token", rt)
	ref := models.RepositoryRef{Owner: "octocat", Name: "repo"}

	out := <-github.Async(context.Background(), github.Done(func(ctx context.Context) error {
		return c.DeleteRepository(ctx, ref)
	}))
	if out.Kind() != github.KindRejected {
		t.Fatalf("kind = %v, want rejected", out.Kind())
	}
	var rerr *github.RejectedError
	if !errors.As(out.Err, &rerr) || rerr.Status != github.StatusForbidden {
		t.Errorf("error = %v, want forbidden", out.Err)
	}
}

func TestAsyncCancelledContext(t *testing.T) {
	rt := &recordingTransport{respond: func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	}}
	c := newTestClient(t, "token", rt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := <-github.Async(ctx, c.ListRepositories)
	if out.Kind() != github.KindNetwork {
		t.Fatalf("kind = %v, want network", out.Kind())
	}
	if !errors.Is(out.Err, context.Canceled) {
		t.Errorf("error = %v, want wrapped context.Canceled", out.Err)
	}
}

func TestCreateRepositoriesKeepsInputOrder(t *testing.T) {
	rt := &recordingTransport{respond: respondWith(http.StatusCreated, repoBody("created"))}
	c := newTestClient(t, "token", rt, github.WithMaxWorkers(2))

	inputs := []models.RepositoryInput{
		{Name: "alpha"},
		{Name: "bad name"},
		{Name: "gamma", Description: "third"},
	}
	results, err := c.CreateRepositories(context.Background(), inputs)
	if err == nil || !strings.Contains(err.Error(), "failed to create 1 out of 3") {
		t.Fatalf("CreateRepositories() error = %v", err)
	}
	if len(results) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(results), len(inputs))
	}
	for i, in := range inputs {
		if results[i].Input.Name != in.Name {
			t.Errorf("results[%d].Input.Name = %q, want %q", i, results[i].Input.Name, in.Name)
		}
	}
	if github.Classify(results[1].Err) != github.KindValidation {
		t.Errorf("results[1].Err = %v, want validation", results[1].Err)
	}
	if results[0].Repository == nil || results[2].Repository == nil {
		t.Error("successful results carry no repository")
	}
	if rt.count() != 2 {
		t.Errorf("transport called %d times, want 2", rt.count())
	}
}

func TestUpdateAndDeleteRepositoriesUseDefaultOwner(t *testing.T) {
	rt := &recordingTransport{respond: func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodDelete {
			return respondWith(http.StatusNoContent, "")(req)
		}
		return respondWith(http.StatusOK, repoBody("renamed"))(req)
	}}
	c := newTestClient(t, "token", rt)
	ctx := context.Background()

	inputs := []models.RepositoryInput{{Name: "old", NewName: "renamed"}, {Owner: "acme", Name: "tool"}}
	if _, err := c.UpdateRepositories(ctx, inputs, "octocat"); err != nil {
		t.Fatalf("UpdateRepositories() error = %v", err)
	}
	if _, err := c.DeleteRepositories(ctx, inputs, "octocat"); err != nil {
		t.Fatalf("DeleteRepositories() error = %v", err)
	}

	paths := map[string]bool{}
	for _, r := range rt.requests {
		paths[r.Method+" "+r.URL.Path] = true
	}
	for _, want := range []string{
		"PATCH /repos/octocat/old",
		"PATCH /repos/acme/tool",
		"DELETE /repos/octocat/old",
		"DELETE /repos/acme/tool",
	} {
		if !paths[want] {
			t.Errorf("missing request %s", want)
		}
	}
}
