// Package kms unwraps the envelope-encrypted signer session key at startup.
// The key ciphertext lives on disk; only KMS (or LocalStack standing in for
// it during local development) can turn it back into plaintext, and the
// plaintext goes straight into a memguard enclave.
package kms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/kms"
)

// Client wraps the AWS KMS SDK's decrypt operation.
type Client struct {
	kms   *kms.Client
	keyID string
}

// New creates a KMS Client scoped to keyID. A non-empty localStackEndpoint
// targets that endpoint with dummy credentials for local development;
// otherwise the AWS default credential chain applies (IAM roles in
// production).
func New(ctx context.Context, region, keyID, localStackEndpoint string) (*Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if localStackEndpoint != "" {
		opts = append(opts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "test")),
		)
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("kms: load aws config: %w", err)
	}

	var kmsOpts []func(*kms.Options)
	if localStackEndpoint != "" {
		kmsOpts = append(kmsOpts, func(o *kms.Options) {
			o.BaseEndpoint = aws.String(localStackEndpoint)
		})
	}

	return &Client{
		kms:   kms.NewFromConfig(cfg, kmsOpts...),
		keyID: keyID,
	}, nil
}

// Decrypt unwraps the ciphertext blob and returns the plaintext key bytes.
// The caller owns securing (and zeroing) the returned bytes.
func (c *Client) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	in := &kms.DecryptInput{CiphertextBlob: ciphertext}
	if c.keyID != "" {
		in.KeyId = aws.String(c.keyID)
	}

	out, err := c.kms.Decrypt(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("kms: decrypt: %w", err)
	}
	return out.Plaintext, nil
}
