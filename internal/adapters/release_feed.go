package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rhcos-prune/internal/ports"
	"rhcos-prune/internal/types"
)

const defaultFeedTimeout = 60 * time.Second

// ReleaseFeedAdapter reads the build catalog published by the release
// artifact redirector: <endpoint>/rhcos-<release>/builds.json and
// <endpoint>/rhcos-<release>/<build>/<arch>/meta.json.
type ReleaseFeedAdapter struct {
	Endpoint string
	Timeout  time.Duration
}

func NewReleaseFeedAdapter(endpoint string, timeoutSec int) ReleaseFeedAdapter {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}
	return ReleaseFeedAdapter{Endpoint: endpoint, Timeout: timeout}
}

type buildsDocument struct {
	Builds []types.BuildListing `json:"builds"`
}

type metaDocument struct {
	Aliyun *struct {
		Images []types.RegionalImage `json:"images"`
	} `json:"aliyun"`
}

func (a ReleaseFeedAdapter) ListBuilds(ctx context.Context, release string) ([]types.BuildListing, error) {
	url := fmt.Sprintf("%s/rhcos-%s/builds.json", a.endpoint(), release)
	body, err := a.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	var document buildsDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed builds document at %s", url)).
			WithCause(err)
	}
	return document.Builds, nil
}

func (a ReleaseFeedAdapter) FetchBuildMeta(ctx context.Context, release string, buildID string, arch string) ([]types.RegionalImage, error) {
	url := fmt.Sprintf("%s/rhcos-%s/%s/%s/meta.json", a.endpoint(), release, buildID, arch)
	body, err := a.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	var document metaDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed meta document at %s", url)).
			WithCause(err)
	}
	if document.Aliyun == nil {
		return nil, nil
	}
	return document.Aliyun.Images, nil
}

func (a ReleaseFeedAdapter) fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.TrimSpace(a.Endpoint) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("release feed endpoint is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create release feed request").
			WithCause(err)
	}
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("release feed request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("release feed request failed").
			WithCause(fmt.Errorf("status=%d url=%s response=%s", resp.StatusCode, url, strings.TrimSpace(string(body))))
	}
	return body, nil
}

func (a ReleaseFeedAdapter) endpoint() string {
	return strings.TrimRight(strings.TrimSpace(a.Endpoint), "/")
}

var _ ports.ReleaseFeedPort = ReleaseFeedAdapter{}
