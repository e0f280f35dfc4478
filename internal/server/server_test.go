package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varviz3d/varviz3d/internal/service"
	"github.com/varviz3d/varviz3d/internal/significance"
	"github.com/varviz3d/varviz3d/internal/track"
	"github.com/varviz3d/varviz3d/internal/uniprot"
	"github.com/varviz3d/varviz3d/internal/variant"
)

type fakeService struct {
	bundle    *service.TrackBundle
	tracksErr error
	domains   *service.DomainSet
	rsid      *service.RSIDResult
	resolve   *uniprot.ResolveResult
	window    int
}

func (f *fakeService) BuildTracks(ctx context.Context, accession string, window int) (*service.TrackBundle, error) {
	f.window = window
	return f.bundle, f.tracksErr
}

func (f *fakeService) Domains(ctx context.Context, accession string) (*service.DomainSet, error) {
	return f.domains, nil
}

func (f *fakeService) FindRSID(ctx context.Context, accession, rsid string) (*service.RSIDResult, error) {
	return f.rsid, nil
}

func (f *fakeService) Resolve(ctx context.Context, symbol string) (*uniprot.ResolveResult, error) {
	return f.resolve, nil
}

func doGet(t *testing.T, svc TrackService, path string) *httptest.ResponseRecorder {
	t.Helper()
	srv := New(svc, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doGet(t, &fakeService{}, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestTracks(t *testing.T) {
	fake := &fakeService{bundle: &service.TrackBundle{
		Accession: "P38398",
		Source:    variant.SourcePrimary,
		Tracks: track.Build([]track.Variant{
			{Position: 2, Class: significance.Pathogenic},
		}, 10, 5),
	}}

	rec := doGet(t, fake, "/api/tracks/P38398?win=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, fake.window)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "P38398", got["uniprot"])
	assert.Equal(t, "primary", got["source"])
	assert.Equal(t, float64(10), got["length"])
	assert.Contains(t, got, "raw")
	assert.Contains(t, got, "smooth")
	assert.Contains(t, got, "bins")
}

func TestTracks_DefaultWindow(t *testing.T) {
	fake := &fakeService{bundle: &service.TrackBundle{
		Accession: "P38398", Source: variant.SourceFallback,
		Tracks: track.Build(nil, 0, 15),
	}}
	rec := doGet(t, fake, "/api/tracks/P38398")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, fake.window, "absent win means service default")
}

func TestTracks_BadWindow(t *testing.T) {
	rec := doGet(t, &fakeService{}, "/api/tracks/P38398?win=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, &fakeService{}, "/api/tracks/P38398?win=-3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTracks_FatalLookup(t *testing.T) {
	rec := doGet(t, &fakeService{tracksErr: errors.New("404")}, "/api/tracks/XXXX")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not resolve sequence")
}

func TestDomains(t *testing.T) {
	fake := &fakeService{domains: &service.DomainSet{Accession: "P00533", Length: 1210}}
	rec := doGet(t, fake, "/api/domains/P00533")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"length":1210`)
}

func TestRSID(t *testing.T) {
	fake := &fakeService{rsid: &service.RSIDResult{
		Accession: "P38398", RSID: "rs80357498", Positions: []int{61},
	}}
	rec := doGet(t, fake, "/api/rsid/P38398/rs80357498")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"positions":[61]`)
}

func TestResolve(t *testing.T) {
	fake := &fakeService{resolve: &uniprot.ResolveResult{
		Query: "BRCA1",
		Best:  &uniprot.Candidate{Accession: "P38398"},
	}}
	rec := doGet(t, fake, "/api/resolve/BRCA1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "P38398")
}
