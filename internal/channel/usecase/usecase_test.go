package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/channel"
	"github.com/projectcnw/sales-backoffice/internal/channel/dto"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type channelKey struct {
	productID int
	channel   string
}

type fakeRepo struct {
	products map[int]bool
	channels map[channelKey]model.ProductChannel
}

func newFakeRepo(productIDs ...int) *fakeRepo {
	f := &fakeRepo{products: map[int]bool{}, channels: map[channelKey]model.ProductChannel{}}
	for _, id := range productIDs {
		f.products[id] = true
	}
	return f
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(channel.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) ProductExists(ctx context.Context, productID int) (bool, error) {
	return f.products[productID], nil
}

func (f *fakeRepo) ChannelsByProductID(ctx context.Context, productID int) ([]model.ProductChannel, error) {
	out := []model.ProductChannel{}
	for k, pc := range f.channels {
		if k.productID == productID {
			out = append(out, pc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	return out, nil
}

func (f *fakeRepo) UpsertChannel(ctx context.Context, productID int, ch string) error {
	now := time.Now()
	f.channels[channelKey{productID, ch}] = model.ProductChannel{
		ProductID:   productID,
		Channel:     ch,
		Status:      model.ChannelPublished,
		PublishedAt: &now,
		UpdatedAt:   now,
	}
	return nil
}

func (f *fakeRepo) UnpublishedProductIDs(ctx context.Context, ch string) ([]int, error) {
	ids := []int{}
	for id := range f.products {
		if _, ok := f.channels[channelKey{id, ch}]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (f *fakeRepo) RemoveChannelsNotIn(ctx context.Context, productID int, channels []string) error {
	keep := map[string]bool{}
	for _, ch := range channels {
		keep[ch] = true
	}
	for k := range f.channels {
		if k.productID == productID && !keep[k.channel] {
			delete(f.channels, k)
		}
	}
	return nil
}

// capturingProducer collects published messages on a channel so tests can
// wait for the async emit.
type capturingProducer struct {
	messages chan []byte
}

func newCapturingProducer() *capturingProducer {
	return &capturingProducer{messages: make(chan []byte, 16)}
}

func (p *capturingProducer) Publish(ctx context.Context, key, value []byte) error {
	p.messages <- value
	return nil
}

func (p *capturingProducer) next(t *testing.T) dto.ProductPublishedEvent {
	t.Helper()
	select {
	case raw := <-p.messages:
		var event dto.ProductPublishedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			t.Fatalf("invalid event payload: %v", err)
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
		return dto.ProductPublishedEvent{}
	}
}

func TestPublishProduct(t *testing.T) {
	repo := newFakeRepo(7)
	producer := newCapturingProducer()
	uc := NewChannelUseCase(repo, producer, zap.NewNop())

	got, err := uc.PublishProduct(context.Background(), &dto.PublishInput{
		ProductID: 7,
		Channels:  []string{"online-store", "pos"},
	})
	if err != nil {
		t.Fatalf("PublishProduct: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("channel count = %d, want 2", len(got))
	}
	for _, pc := range got {
		if pc.Status != string(model.ChannelPublished) || pc.PublishedAt == nil {
			t.Errorf("channel %q not published: %+v", pc.Channel, pc)
		}
	}

	event := producer.next(t)
	if event.EventType != "ProductPublished" || event.Payload.ProductID != 7 {
		t.Errorf("event = %+v, want ProductPublished for product 7", event)
	}
	if event.EventID == "" {
		t.Error("event id must be set")
	}
}

func TestPublishProductNotFound(t *testing.T) {
	uc := NewChannelUseCase(newFakeRepo(), newCapturingProducer(), zap.NewNop())

	_, err := uc.PublishProduct(context.Background(), &dto.PublishInput{
		ProductID: 1,
		Channels:  []string{"online-store"},
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestPublishAll(t *testing.T) {
	repo := newFakeRepo(1, 2, 3)
	// Product 2 is already on the default channel.
	if err := repo.UpsertChannel(context.Background(), 2, DefaultChannel); err != nil {
		t.Fatal(err)
	}

	producer := newCapturingProducer()
	uc := NewChannelUseCase(repo, producer, zap.NewNop())

	count, err := uc.PublishAll(context.Background())
	if err != nil {
		t.Fatalf("PublishAll: %v", err)
	}
	if count != 2 {
		t.Fatalf("published count = %d, want 2", count)
	}
	for _, id := range []int{1, 3} {
		if _, ok := repo.channels[channelKey{id, DefaultChannel}]; !ok {
			t.Errorf("product %d not published to %q", id, DefaultChannel)
		}
	}

	seen := map[int]bool{}
	for i := 0; i < 2; i++ {
		seen[producer.next(t).Payload.ProductID] = true
	}
	if !seen[1] || !seen[3] {
		t.Errorf("events for products %v, want 1 and 3", seen)
	}

	// Second run finds nothing left to publish.
	count, err = uc.PublishAll(context.Background())
	if err != nil {
		t.Fatalf("PublishAll: %v", err)
	}
	if count != 0 {
		t.Errorf("second run published %d, want 0", count)
	}
}

func TestRepublishReplacesChannelSet(t *testing.T) {
	repo := newFakeRepo(5)
	producer := newCapturingProducer()
	uc := NewChannelUseCase(repo, producer, zap.NewNop())

	_, err := uc.PublishProduct(context.Background(), &dto.PublishInput{
		ProductID: 5,
		Channels:  []string{"online-store", "pos"},
	})
	if err != nil {
		t.Fatalf("PublishProduct: %v", err)
	}
	producer.next(t)

	got, err := uc.Republish(context.Background(), 5, &dto.RepublishInput{Channels: []string{"marketplace"}})
	if err != nil {
		t.Fatalf("Republish: %v", err)
	}
	if len(got) != 1 || got[0].Channel != "marketplace" {
		t.Errorf("channels after republish = %+v, want only marketplace", got)
	}
}

func TestProductChannelsNotFound(t *testing.T) {
	uc := NewChannelUseCase(newFakeRepo(), nil, zap.NewNop())

	_, err := uc.ProductChannels(context.Background(), 9)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
