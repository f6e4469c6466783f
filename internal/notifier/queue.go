package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/bytedance/sonic"

	"leadboard/internal/model"
)

// QueueClient is the part of *azqueue.QueueClient used by QueueWriter.
type QueueClient interface {
	EnqueueMessage(ctx context.Context, content string, o *azqueue.EnqueueMessageOptions) (azqueue.EnqueueMessagesResponse, error)
}

// QueueWriter hands stage updates to an Azure Storage queue consumed by the
// remote store.
type QueueWriter struct {
	queue QueueClient
}

func NewQueueWriter(connStr, queueName string) (*QueueWriter, error) {
	opts := azqueue.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    30 * time.Second,
				RetryDelay:    time.Second,
				MaxRetryDelay: 15 * time.Second,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	q, err := azqueue.NewQueueClientFromConnectionString(connStr, queueName, &opts)
	if err != nil {
		return nil, fmt.Errorf("queue client: %w", err)
	}
	return NewQueueWriterFromClient(q), nil
}

func NewQueueWriterFromClient(q QueueClient) *QueueWriter {
	return &QueueWriter{queue: q}
}

func (w *QueueWriter) WriteStage(ctx context.Context, u model.StageUpdate) error {
	data, err := sonic.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode stage update: %w", err)
	}
	if _, err := w.queue.EnqueueMessage(ctx, string(data), nil); err != nil {
		return fmt.Errorf("enqueue stage update: %w", err)
	}
	return nil
}
