package spaces

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*in.Key] = data
	f.types[*in.Key] = *in.ContentType
	return &s3.PutObjectOutput{}, nil
}

func TestRepositoryMissingObjectIsEmpty(t *testing.T) {
	repo := NewRepository(NewWithClient(newFakeClient(), "bucket", "catalog"))

	entries, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRepositoryRoundTrip(t *testing.T) {
	client := newFakeClient()
	repo := NewRepository(NewWithClient(client, "bucket", "/catalog/"))
	want := []cards.Entry{
		{ID: 10, Card: cards.Card{Name: "Akari", HP: "80", Type: cards.TypeHuman}},
		{ID: 11, Card: cards.Card{Name: "Boreas", HP: "n/a"}},
	}

	require.NoError(t, repo.SaveAll(context.Background(), want))
	assert.Contains(t, client.objects, "catalog/cards.json")
	assert.Equal(t, "application/json", client.types["catalog/cards.json"])

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepositoryCorruptObject(t *testing.T) {
	client := newFakeClient()
	client.objects["cards.json"] = []byte("{not json")
	repo := NewRepository(NewWithClient(client, "bucket", ""))

	_, err := repo.Load(context.Background())

	assert.Error(t, err)
}

func TestBackupUploadsBothFormats(t *testing.T) {
	client := newFakeClient()
	svc := NewBackupService(NewWithClient(client, "bucket", "catalog"))
	svc.now = func() time.Time { return time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC) }

	res, err := svc.Backup(context.Background(), []cards.Card{{Name: "Akari", HP: "80"}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"catalog/backups/anime-cards-2024-05-06.json",
		"catalog/backups/anime-cards-2024-05-06.csv",
	}, res.Keys)
	assert.Equal(t, 1, res.Cards)
	assert.True(t, strings.HasPrefix(string(client.objects[res.Keys[1]]), "Name,Element,Talent,"))
	assert.Equal(t, "text/csv", client.types[res.Keys[1]])
}

func TestBackupFailure(t *testing.T) {
	client := newFakeClient()
	client.putErr = errors.New("access denied")
	svc := NewBackupService(NewWithClient(client, "bucket", ""))

	_, err := svc.Backup(context.Background(), nil)

	assert.ErrorContains(t, err, "access denied")
}
