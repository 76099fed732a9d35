package hotest_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2mint/ho"
	"github.com/i2mint/ho/hotest"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, map[string]int{"n": 1})
	resp, err := tr.Send(context.Background(), &ho.Request{Method: "GET", URL: "https://x"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.ContentType())
	assert.JSONEq(t, `{"n":1}`, resp.Text())
	assert.Equal(t, 1, tr.Count())
}

func TestFail(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	tr := hotest.Fail(sentinel)

	_, err := tr.Send(context.Background(), &ho.Request{Method: "GET", URL: "https://x"})
	assert.ErrorIs(t, err, sentinel)
}

func TestRequests_snapshot(t *testing.T) {
	t.Parallel()

	tr := hotest.Text("ok")
	for i := 0; i < 3; i++ {
		_, err := tr.Send(context.Background(), &ho.Request{Method: "GET", URL: string(rune('a' + i))})
		require.NoError(t, err)
	}

	reqs := tr.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "a", reqs[0].URL)
	assert.Equal(t, tr.Last(t).URL, reqs[2].URL)
}
