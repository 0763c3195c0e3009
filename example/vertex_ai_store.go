// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"context"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/model"
	"github.com/flowstack/agentkit-go/pkg/logging"
	"github.com/flowstack/agentkit-go/types/aiconv"
)

// VertexAIExampleStore provides examples from Vertex example store.
type VertexAIExampleStore struct {
	client       *aiplatform.ExampleStoreClient
	exampleStore string
}

var _ Provider = (*VertexAIExampleStore)(nil)

// NewVertexAIExampleStore creates a new VertexAIExampleStore client from the given exampleStore.
//
// exampleStore is the resource name of the vertex example store, in the format of
//
//	projects/{project}/locations/{location}/exampleStores/{example_store}
func NewVertexAIExampleStore(ctx context.Context, exampleStore string, opts ...option.ClientOption) (*VertexAIExampleStore, error) {
	logger := logging.FromContext(ctx).WithGroup("example.VertexAIExampleStore")
	opts = append(opts, option.WithLogger(logger))

	client, err := aiplatform.NewExampleStoreClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &VertexAIExampleStore{
		client:       client,
		exampleStore: exampleStore,
	}, nil
}

// GetExamples returns the slice of [*Example] from Vertex AI example store for a given query.
func (e *VertexAIExampleStore) GetExamples(ctx context.Context, query string) ([]*Example, error) {
	queryContent := aiconv.ToAIPlatformContent(genai.NewContentFromText(query, genai.Role(model.RoleUser)))
	req := &aiplatformpb.SearchExamplesRequest{
		Parameters: &aiplatformpb.SearchExamplesRequest_StoredContentsExampleParameters{
			StoredContentsExampleParameters: &aiplatformpb.StoredContentsExampleParameters{
				Query: &aiplatformpb.StoredContentsExampleParameters_ContentSearchKey_{
					ContentSearchKey: &aiplatformpb.StoredContentsExampleParameters_ContentSearchKey{
						Contents: []*aiplatformpb.Content{queryContent},
						SearchKeyGenerationMethod: &aiplatformpb.StoredContentsExample_SearchKeyGenerationMethod{
							Method: &aiplatformpb.StoredContentsExample_SearchKeyGenerationMethod_LastEntry_{
								LastEntry: &aiplatformpb.StoredContentsExample_SearchKeyGenerationMethod_LastEntry{},
							},
						},
					},
				},
			},
		},
		ExampleStore: e.exampleStore,
		TopK:         10,
	}
	resp, err := e.client.SearchExamples(ctx, req)
	if err != nil {
		return nil, err
	}

	returnedExamples := []*Example{}
	// Convert results to genai formats
	for _, result := range resp.GetResults() {
		if result.SimilarityScore < 0.5 {
			continue
		}
		stored := result.GetExample().GetStoredContentsExample()
		expectedOutput := aiconv.FromAIPlatformContents(stored.GetContentsExample().GetContents())

		returnedExamples = append(returnedExamples, &Example{
			Input:  genai.NewContentFromText(stored.GetSearchKey(), genai.Role(model.RoleUser)),
			Output: expectedOutput,
		})
	}

	return returnedExamples, nil
}
