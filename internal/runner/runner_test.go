package runner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site builds an httptest server behaving like the target site: probe pages
// authenticate any request carrying session=valid, the check-in endpoint
// awards a fixed amount on POST.
func site(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session")
		authed := err == nil && c.Value == "valid"

		switch {
		case r.URL.Path == "/dashboard" || r.URL.Path == "/user" || r.URL.Path == "/profile":
			if !authed {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			fmt.Fprint(w, "<html><body>Dashboard — welcome back</body></html>")
		case r.URL.Path == "/login":
			fmt.Fprint(w, "<html><body>please sign in</body></html>")
		case r.Method == http.MethodPost:
			fmt.Fprint(w, `Check-in successful! <div class="reward-amount">1.5 元</div>`)
		default:
			fmt.Fprint(w, "<html><body>press the button to check in</body></html>")
		}
	}))
}

func testConfig(url string) Config {
	return Config{
		CheckinURL:           url,
		MainSite:             url,
		DelayBetweenAccounts: 1, // effectively no delay in tests
	}
}

func TestRun_EndToEnd_OneSuccessOneAuthFailure(t *testing.T) {
	srv := site(t)
	defer srv.Close()

	r := Runner{Config: testConfig(srv.URL)}
	results := r.Run(context.Background(), []string{"session=valid", "session=stale"})

	require.Len(t, results, 2)
	assert.Equal(t, "account1", results[0].Account)
	assert.True(t, results[0].Success)
	assert.Contains(t, results[0].Message, "1.5 元")
	assert.Equal(t, "account2", results[1].Account)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Message, "login")

	report := BuildReport(results)
	assert.Contains(t, report.Title, "(1/2)")
	assert.Less(t, strings.Index(report.Body, "account1"), strings.Index(report.Body, "account2"),
		"results must be listed in input order")
}

func TestRun_ResultPerNonEmptyEntry(t *testing.T) {
	srv := site(t)
	defer srv.Close()

	r := Runner{Config: testConfig(srv.URL)}
	results := r.Run(context.Background(), []string{"session=valid", "garbage-no-pairs", "session=valid"})

	require.Len(t, results, 3)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Message, "cookie")
}

func TestRun_CredentialFormatErrorDoesNotAbortRun(t *testing.T) {
	srv := site(t)
	defer srv.Close()

	r := Runner{Config: testConfig(srv.URL)}
	results := r.Run(context.Background(), []string{"no-equals-here", "session=valid"})

	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.True(t, results[1].Success, "later accounts must still be processed")
}

func TestBuildReport_Counts(t *testing.T) {
	report := BuildReport([]Result{
		{Account: "account1", Success: true, Message: "ok"},
		{Account: "account2", Success: false, Message: "cookie expired"},
		{Account: "account3", Success: false, Message: "status 503"},
	})

	assert.Equal(t, "LeafLow check-in report (1/3)", report.Title)
	assert.Contains(t, report.Body, "3 accounts total, 1 succeeded")
	assert.Contains(t, report.Body, "✅ account1: ok")
	assert.Contains(t, report.Body, "❌ account2: cookie expired")
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil)
	assert.Equal(t, "LeafLow check-in report (0/0)", report.Title)
}
