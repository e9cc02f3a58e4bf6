package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestNewPublisherRequiresProject(t *testing.T) {
	_, err := NewPublisher(context.Background(), "")
	assert.Error(t, err)
}

func newFakePublisher(t *testing.T) (*PubSubPublisher, *pstest.Server) {
	t.Helper()
	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	pub, err := NewPublisher(context.Background(), "test-project", option.WithGRPCConn(conn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })
	return pub, srv
}

func TestPublishJSON(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pub, srv := newFakePublisher(t)
	_, err := pub.client.CreateTopic(ctx, "report-requested")
	require.NoError(t, err)

	id, err := PublishJSON(ctx, pub, "report-requested", map[string]string{"report_id": "r-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.JSONEq(t, `{"report_id":"r-1"}`, string(msgs[0].Data))
}

func TestPublishUnknownTopic(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pub, _ := newFakePublisher(t)
	_, err := pub.Publish(ctx, "missing", []byte("x"))
	assert.Error(t, err)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, []byte) (string, error) {
	return "", errors.New("unavailable")
}

func TestPublishJSONMarshalError(t *testing.T) {
	_, err := PublishJSON(context.Background(), failingPublisher{}, "t", make(chan int))
	assert.ErrorContains(t, err, "marshal")
	_, err = PublishJSON(context.Background(), failingPublisher{}, "t", 1)
	assert.EqualError(t, err, "unavailable")
}
