// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/types"
)

// GCSService is a [types.ArtifactService] backed by Google Cloud Storage,
// storing each artifact version as one object keyed by
// appName/userID/sessionID-or-"user"/filename/version.
type GCSService struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

var _ types.ArtifactService = (*GCSService)(nil)

// NewGCSService creates a [GCSService] against bucketName using
// application-default credentials.
func NewGCSService(ctx context.Context, bucketName string) (*GCSService, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{
			storage.ScopeFullControl,
			storage.ScopeReadWrite,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: detect storage credentials: %w", types.ErrArtifactBackendUnavailable, err)
	}

	client, err := storage.NewGRPCClient(ctx, option.WithAuthCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("%w: create storage client: %w", types.ErrArtifactBackendUnavailable, err)
	}

	return &GCSService{
		client: client,
		bucket: client.Bucket(bucketName),
	}, nil
}

// fileHasUserNamespace checks if the filename has a user namespace.
func (a *GCSService) fileHasUserNamespace(filename string) bool {
	return strings.HasPrefix(filename, "user:")
}

// getBlobName constructs the blob name in GCS.
func (a *GCSService) getBlobName(appName, userID, sessionID, filename string, version int) string {
	if a.fileHasUserNamespace(filename) {
		return fmt.Sprintf("%s/%s/user/%s/%d", appName, userID, filename, version)
	}
	return fmt.Sprintf("%s/%s/%s/%s/%d", appName, userID, sessionID, filename, version)
}

// SaveArtifact implements [types.ArtifactService].
func (a *GCSService) SaveArtifact(ctx context.Context, appName, userID, sessionID, filename string, artifact *genai.Part) (int, error) {
	if strings.ContainsAny(filename, "/\\") {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidFilename, filename)
	}

	versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
	if err != nil {
		return 0, err
	}
	version := len(versions)

	blobName := a.getBlobName(appName, userID, sessionID, filename, version)
	blob := a.bucket.Object(blobName)

	w := blob.NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(artifact.InlineData.Data)); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	if _, err := blob.Update(ctx, storage.ObjectAttrsToUpdate{
		ContentType: artifact.InlineData.MIMEType,
	}); err != nil {
		return 0, err
	}

	return version, nil
}

// LoadArtifact implements [types.ArtifactService].
//
// version <= 0 means "latest"; any positive version loads that specific
// revision.
func (a *GCSService) LoadArtifact(ctx context.Context, appName, userID, sessionID, filename string, version int) (*genai.Part, error) {
	if strings.ContainsAny(filename, "/\\") {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidFilename, filename)
	}

	if version <= 0 {
		versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			return nil, fmt.Errorf("%w: %q", types.ErrNotFound, filename)
		}
		version = slices.Max(versions)
	}

	blobName := a.getBlobName(appName, userID, sessionID, filename, version)
	blob := a.bucket.Object(blobName)

	r, err := blob.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %q version %d: %w", types.ErrNotFound, filename, version, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return genai.NewPartFromBytes(data, r.Attrs.ContentType), nil
}

// ListArtifactKey implements [types.ArtifactService].
func (a *GCSService) ListArtifactKey(ctx context.Context, appName, userID, sessionID string) ([]string, error) {
	filenames := make(map[string]struct{})
	var mu sync.Mutex
	insert := func(name string) {
		mu.Lock()
		filenames[name] = struct{}{}
		mu.Unlock()
	}

	var eg errgroup.Group
	eg.Go(func() error {
		sessionPrefix := fmt.Sprintf("%s/%s/%s/", appName, userID, sessionID)
		it := a.bucket.Objects(ctx, &storage.Query{Prefix: sessionPrefix})
		for {
			objAttrs, err := it.Next()
			if err != nil {
				if errors.Is(err, iterator.Done) {
					return nil
				}
				return err
			}
			if pairs := strings.Split(objAttrs.Name, "/"); len(pairs) == 5 {
				insert(pairs[3])
			}
		}
	})

	eg.Go(func() error {
		userNamespacePrefix := fmt.Sprintf("%s/%s/user/", appName, userID)
		it := a.bucket.Objects(ctx, &storage.Query{Prefix: userNamespacePrefix})
		for {
			objAttrs, err := it.Next()
			if err != nil {
				if errors.Is(err, iterator.Done) {
					return nil
				}
				return err
			}
			if pairs := strings.Split(objAttrs.Name, "/"); len(pairs) == 5 {
				insert(pairs[3])
			}
		}
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return slices.Sorted(maps.Keys(filenames)), nil
}

// DeleteArtifact implements [types.ArtifactService].
func (a *GCSService) DeleteArtifact(ctx context.Context, appName, userID, sessionID, filename string) error {
	versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
	if err != nil {
		return err
	}

	for _, version := range versions {
		blobName := a.getBlobName(appName, userID, sessionID, filename, version)
		if err := a.bucket.Object(blobName).Delete(ctx); err != nil {
			return err
		}
	}

	return nil
}

// ListVersions implements [types.ArtifactService].
func (a *GCSService) ListVersions(ctx context.Context, appName, userID, sessionID, filename string) ([]int, error) {
	prefix := a.getBlobName(appName, userID, sessionID, filename, 0)
	prefix = prefix[:len(prefix)-1] // drop the trailing "0", keep the filename/ prefix shared by all versions

	it := a.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var versions []int
	for {
		objAttrs, err := it.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, err
		}

		idx := strings.LastIndex(objAttrs.Name, "/")
		version, err := strconv.Atoi(objAttrs.Name[idx+1:])
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	slices.Sort(versions)

	return versions, nil
}

// Close implements [types.ArtifactService].
func (a *GCSService) Close() error {
	return a.client.Close()
}
