package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog/log"

	"rhcos-prune/internal/ports"
	"rhcos-prune/internal/types"
)

const installerMetadataPath = "data/data/coreos/rhcos.json"

// InstallerHistoryAdapter walks the installer repository's release
// branch and collects every build id the bootimage metadata file has
// ever referenced, together with its per-region image ids. Builds seen
// anywhere in the history are live boot artifacts: installers in the
// wild still boot from them.
type InstallerHistoryAdapter struct {
	RepoURL string
}

func NewInstallerHistoryAdapter(repoURL string) InstallerHistoryAdapter {
	return InstallerHistoryAdapter{RepoURL: repoURL}
}

type installerMetadata struct {
	Architectures map[string]struct {
		Artifacts map[string]struct {
			Release string `json:"release"`
		} `json:"artifacts"`
		Images map[string]struct {
			Regions map[string]types.RegionImage `json:"regions"`
		} `json:"images"`
	} `json:"architectures"`
}

func (a InstallerHistoryAdapter) Resolve(ctx context.Context, release string) (map[string]map[string]types.RegionImage, error) {
	if strings.TrimSpace(a.RepoURL) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("installer repository url is empty")
	}
	dir, err := os.MkdirTemp("", "installer-history-")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create clone directory").
			WithCause(err)
	}
	defer os.RemoveAll(dir)

	branch := "release-" + release
	log.Debug().Str("repo", a.RepoURL).Str("branch", branch).Msg("cloning installer repository")
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           a.RepoURL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to clone installer branch %s", branch)).
			WithCause(err)
	}

	path := installerMetadataPath
	iter, err := repo.Log(&git.LogOptions{FileName: &path})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to walk installer history").
			WithCause(err)
	}

	images := map[string]map[string]types.RegionImage{}
	err = iter.ForEach(func(commit *object.Commit) error {
		file, err := commit.File(path)
		if err != nil {
			if errors.Is(err, object.ErrFileNotFound) {
				return nil
			}
			return err
		}
		contents, err := file.Contents()
		if err != nil {
			return err
		}
		var metadata installerMetadata
		if err := json.Unmarshal([]byte(contents), &metadata); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed installer metadata at commit %s", commit.Hash)).
				WithCause(err)
		}
		arch, ok := metadata.Architectures["x86_64"]
		if !ok {
			return nil
		}
		cloud, ok := arch.Images["aliyun"]
		if !ok {
			return nil
		}
		artifact, ok := arch.Artifacts["aliyun"]
		if !ok || artifact.Release == "" {
			return nil
		}
		log.Debug().Str("build", artifact.Release).Str("commit", commit.Hash.String()).Msg("installer references build")
		images[artifact.Release] = cloud.Regions
		return nil
	})
	if err != nil {
		var builder *errbuilder.ErrBuilder
		if errors.As(err, &builder) {
			return nil, err
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read installer history").
			WithCause(err)
	}
	return images, nil
}

var _ ports.InstallerHistoryPort = InstallerHistoryAdapter{}
