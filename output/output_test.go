package output

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := FileSink{Dir: dir}

	if err := sink.Put(context.Background(), "frame.ppm", []byte("P3\n1 1\n255\n0 0 0\n")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "frame.ppm"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "P3\n1 1\n255\n0 0 0\n" {
		t.Errorf("file contents = %q", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sink.Put(ctx, "late.ppm", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.ppm":     "image/x-portable-pixmap",
		"b.PNG":     "image/png",
		"c.jpeg":    "image/jpeg",
		"d.tif":     "image/tiff",
		"e.bmp":     "image/bmp",
		"f.unknown": "application/octet-stream",
		"noext":     "application/octet-stream",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkPut(t *testing.T) {
	fake := &fakeS3{}
	sink := newS3Sink(fake, S3Config{Bucket: "renders", Prefix: "final", ACL: "public-read"})

	if err := sink.Put(context.Background(), "frame.png", []byte("png bytes")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	in := fake.input
	if aws.StringValue(in.Bucket) != "renders" {
		t.Errorf("bucket = %q", aws.StringValue(in.Bucket))
	}
	if aws.StringValue(in.Key) != "final/frame.png" {
		t.Errorf("key = %q", aws.StringValue(in.Key))
	}
	if aws.StringValue(in.ContentType) != "image/png" {
		t.Errorf("content type = %q", aws.StringValue(in.ContentType))
	}
	if aws.StringValue(in.ACL) != "public-read" {
		t.Errorf("acl = %q", aws.StringValue(in.ACL))
	}
	if aws.Int64Value(in.ContentLength) != 9 || string(fake.body) != "png bytes" {
		t.Errorf("body = %q (length %d)", fake.body, aws.Int64Value(in.ContentLength))
	}
}

func TestS3SinkPutError(t *testing.T) {
	boom := errors.New("boom")
	sink := newS3Sink(&fakeS3{err: boom}, S3Config{Bucket: "renders"})

	err := sink.Put(context.Background(), "frame.ppm", []byte("x"))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if sink.Key("frame.ppm") != "frame.ppm" {
		t.Errorf("key without prefix = %q", sink.Key("frame.ppm"))
	}
}

func TestNewS3SinkRequiresBucket(t *testing.T) {
	if _, err := NewS3Sink(S3Config{}); err == nil {
		t.Error("expected an error without a bucket")
	}
}
