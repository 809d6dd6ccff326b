package repository

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/suite"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain/file"
)

type cloudStorageTestSuite struct {
	suite.Suite
	client        *storage.Client
	bucketName    string
	bucketUrl     string
	testingFolder string
	repo          file.MirrorRepo
}

func TestCloudStorageWriterRepo(t *testing.T) {
	if os.Getenv("GCS_TEST_BUCKET") == "" {
		t.Skip("requires GCS_TEST_BUCKET and google cloud storage auth")
	}
	suite.Run(t, new(cloudStorageTestSuite))
}

func (s *cloudStorageTestSuite) SetupSuite() {
	ctx := bCtx.Background()
	opts := []option.ClientOption{}
	if cred := os.Getenv("GCS_TEST_CREDENTIALS"); cred != "" {
		opts = append(opts, option.WithCredentialsFile(cred))
	}
	client, err := storage.NewClient(ctx, opts...)
	s.Require().NoError(err)

	s.client = client
	s.bucketName = os.Getenv("GCS_TEST_BUCKET")
	s.bucketUrl = fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucketName)
	s.testingFolder = "testing"
	s.repo, err = NewCloudStorageWriterRepo(&CloudStorageWriterRepoCfg{
		Timeout:    30 * time.Second,
		Client:     client,
		BucketName: s.bucketName,
		Url:        s.bucketUrl,
	})
	s.Require().NoError(err)
}

func (s *cloudStorageTestSuite) TearDownSuite() {
	ctx := bCtx.Background()
	bucket := s.client.Bucket(s.bucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: s.testingFolder})
	for {
		attr, err := it.Next()
		if err == iterator.Done {
			break
		}
		s.NoError(err)
		s.NoError(bucket.Object(attr.Name).Delete(ctx))
	}
	s.NoError(s.client.Close())
}

func (s *cloudStorageTestSuite) TestStore() {
	path := fmt.Sprintf("%s/images/%d.json", s.testingFolder, time.Now().UnixNano())
	body := []byte(`{"name":"Badge","attributes":[{"trait_type":"Soulbound","value":"true"}]}`)

	url, err := s.repo.Store(bCtx.Background(), path, body, "application/json")
	s.Require().NoError(err)
	s.Equal(s.bucketUrl+path, url)

	resp, err := http.Get(url)
	s.Require().NoError(err)
	defer resp.Body.Close()
	got, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal(body, got)
}
