package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vtriage/internal/models"
	"vtriage/internal/services"
	"vtriage/internal/shared"
)

var _ services.Service = (*mockService)(nil)

// mockService is a test double for services.Service.
type mockService struct {
	knownIDs       map[string]bool
	bulkCalls      [][]string
	bulkErr        error
	bulkErrOnCall  int // 1-based call index to fail on (0 = never)
	importResults  []models.ImportResult
	importCalls    [][]string
	importErr      error
	channelCalls   [][]models.ChannelExport
	channelResults []models.ImportResult
}

func (m *mockService) Name() string { return "mock" }

func (m *mockService) InboxVideos(ctx context.Context, opts services.ListOpts) ([]models.Video, error) {
	return nil, nil
}

func (m *mockService) SavedVideos(ctx context.Context, opts services.ListOpts) (*models.PaginatedVideos, error) {
	return &models.PaginatedVideos{}, nil
}

func (m *mockService) bulk(ids []string) ([]models.Video, error) {
	m.bulkCalls = append(m.bulkCalls, ids)
	if m.bulkErr != nil && (m.bulkErrOnCall == 0 || m.bulkErrOnCall == len(m.bulkCalls)) {
		return nil, m.bulkErr
	}
	var videos []models.Video
	for _, id := range ids {
		if m.knownIDs == nil || m.knownIDs[id] {
			videos = append(videos, models.Video{ID: id, Status: models.StatusSaved})
		}
	}
	return videos, nil
}

func (m *mockService) BulkSave(ctx context.Context, ids []string) ([]models.Video, error) {
	return m.bulk(ids)
}

func (m *mockService) BulkDiscard(ctx context.Context, ids []string) ([]models.Video, error) {
	return m.bulk(ids)
}

func (m *mockService) ImportVideoURLs(ctx context.Context, urls []string) (*models.ImportResult, error) {
	m.importCalls = append(m.importCalls, urls)
	if m.importErr != nil {
		return nil, m.importErr
	}
	res := m.importResults[len(m.importCalls)-1]
	return &res, nil
}

func (m *mockService) ImportChannels(ctx context.Context, channels []models.ChannelExport) (*models.ImportResult, error) {
	m.channelCalls = append(m.channelCalls, channels)
	res := m.channelResults[len(m.channelCalls)-1]
	return &res, nil
}

func (m *mockService) SaveVideo(ctx context.Context, id string) (*models.Video, error) {
	return &models.Video{ID: id, Status: models.StatusSaved}, nil
}

func (m *mockService) DiscardVideo(ctx context.Context, id string) (*models.Video, error) {
	return &models.Video{ID: id, Status: models.StatusDiscarded}, nil
}

func (m *mockService) DiscardedVideos(ctx context.Context, days int, opts services.ListOpts) ([]models.Video, error) {
	return nil, nil
}

func (m *mockService) ExportAll(ctx context.Context) (*models.ExportData, error) {
	return &models.ExportData{}, nil
}

func (m *mockService) PurgeDiscarded(ctx context.Context) (*models.PurgeResult, error) {
	return &models.PurgeResult{}, nil
}

func newTestEngine(svc *mockService, chunkSize int) *TriageEngine {
	// A high rate limit keeps tests fast while still exercising limiter.Wait.
	return NewTriageEngine(svc, EngineOpts{ChunkSize: chunkSize, RateLimit: 10000})
}

func TestEngineBulkSaveChunksLargeInput(t *testing.T) {
	svc := &mockService{}
	e := newTestEngine(svc, 50)

	res, err := e.BulkSave(context.Background(), ids(120), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(svc.bulkCalls) != 3 {
		t.Fatalf("expected 3 chunked calls, got %d", len(svc.bulkCalls))
	}
	wantSizes := []int{50, 50, 20}
	for i, call := range svc.bulkCalls {
		if len(call) != wantSizes[i] {
			t.Errorf("call %d: expected %d ids, got %d", i, wantSizes[i], len(call))
		}
	}
	if res.Total != 120 || res.Succeeded != 120 || res.Skipped != 0 {
		t.Errorf("unexpected aggregate: %+v", res)
	}
}

func TestEngineBulkSaveSingleChunkBypass(t *testing.T) {
	svc := &mockService{}
	e := newTestEngine(svc, 50)

	prog := make(chan ProgressUpdate, 4)
	res, err := e.BulkSave(context.Background(), ids(10), prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Inputs that fit one chunk go straight to the backend, but progress is
	// still reported once at completion.
	if len(svc.bulkCalls) != 1 {
		t.Fatalf("expected a single direct call, got %d", len(svc.bulkCalls))
	}
	if res.Total != 10 || res.Succeeded != 10 {
		t.Errorf("unexpected aggregate: %+v", res)
	}

	updates := drain(prog)
	if len(updates) != 1 || updates[0].Processed != 10 || updates[0].Total != 10 {
		t.Errorf("expected one final (10, 10) update, got %v", updates)
	}
}

func TestEngineBulkDiscardCountsUnknownIDsAsSkipped(t *testing.T) {
	svc := &mockService{knownIDs: map[string]bool{"id1": true, "id2": true}}
	e := newTestEngine(svc, 50)

	res, err := e.BulkDiscard(context.Background(), []string{"id1", "id2", "stale"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 3 || res.Succeeded != 2 || res.Skipped != 1 {
		t.Errorf("expected 2 succeeded / 1 skipped, got %+v", res)
	}
}

func TestEngineBulkSaveChunkFailureContinues(t *testing.T) {
	svc := &mockService{bulkErr: errors.New("gateway timeout"), bulkErrOnCall: 2}
	e := newTestEngine(svc, 10)

	res, err := e.BulkSave(context.Background(), ids(25), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(svc.bulkCalls) != 3 {
		t.Fatalf("expected all 3 chunks attempted, got %d", len(svc.bulkCalls))
	}
	if res.Total != 15 || res.Succeeded != 15 {
		t.Errorf("expected 15 merged items from surviving chunks, got %+v", res)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "items 11-20") {
		t.Errorf("expected one range-scoped error, got %v", res.Errors)
	}
}

func TestEngineBulkSaveEmptySelection(t *testing.T) {
	svc := &mockService{}
	e := newTestEngine(svc, 50)

	res, err := e.BulkSave(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.bulkCalls) != 0 {
		t.Error("expected no backend call for an empty selection")
	}
	if res.Total != 0 {
		t.Errorf("expected zero aggregate, got %+v", res)
	}
}

func TestEngineImportVideoURLs(t *testing.T) {
	svc := &mockService{
		importResults: []models.ImportResult{
			{Total: 2, Imported: 1, Skipped: 1, Errors: nil},
		},
	}
	e := newTestEngine(svc, 50)

	res, err := e.ImportVideoURLs(context.Background(), []string{
		"https://youtube.com/watch?v=a",
		"https://youtube.com/watch?v=b",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Total != 2 || res.Succeeded != 1 || res.Skipped != 1 {
		t.Errorf("expected import counts mapped into the aggregate, got %+v", res)
	}
}

func TestEngineImportVideoURLsChunked(t *testing.T) {
	svc := &mockService{
		importResults: []models.ImportResult{
			{Total: 2, Imported: 2},
			{Total: 1, Imported: 0, Skipped: 0, Errors: []string{"invalid YouTube URL: nope"}},
		},
	}
	e := newTestEngine(svc, 2)

	res, err := e.ImportVideoURLs(context.Background(), []string{"u1", "u2", "nope"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(svc.importCalls) != 2 {
		t.Fatalf("expected 2 chunked import calls, got %d", len(svc.importCalls))
	}
	if res.Total != 3 || res.Succeeded != 2 {
		t.Errorf("unexpected aggregate: %+v", res)
	}
	if len(res.Errors) != 1 {
		t.Errorf("expected the backend's error carried through, got %v", res.Errors)
	}
}

func TestEngineImportChannels(t *testing.T) {
	svc := &mockService{
		channelResults: []models.ImportResult{{Total: 1, Imported: 1}},
	}
	e := newTestEngine(svc, 50)

	res, err := e.ImportChannels(context.Background(), []models.ChannelExport{
		{YouTubeChannelID: "UC123", Name: "Some Channel"},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Succeeded != 1 {
		t.Errorf("unexpected aggregate: %+v", res)
	}
}

func TestEngineNilService(t *testing.T) {
	e := NewTriageEngine(nil, EngineOpts{})

	if _, err := e.BulkSave(context.Background(), ids(1), nil); !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
	if _, err := e.BulkDiscard(context.Background(), ids(1), nil); !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
	if _, err := e.ImportVideoURLs(context.Background(), []string{"u"}, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}
