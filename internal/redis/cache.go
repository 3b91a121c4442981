package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	// ParcelCacheTTL is short: payment confirmation and rider assignment
	// both mutate parcels out-of-band of the fetch path.
	ParcelCacheTTL = 30 * time.Second
)

const parcelCachePrefix = "cache:parcel:"

const availableRidersKey = "available_riders"

// CachedParcel represents a cached parcel entity.
type CachedParcel struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SenderEmail     string    `json:"senderEmail"`
	ReceiverName    string    `json:"receiverName"`
	ReceiverAddress string    `json:"receiverAddress"`
	Cost            float64   `json:"cost"`
	PaymentStatus   string    `json:"paymentStatus"`
	DeliveryStatus  string    `json:"deliveryStatus"`
	TrackingID      string    `json:"trackingId"`
	RiderID         string    `json:"riderId"`
	RiderName       string    `json:"riderName"`
	RiderEmail      string    `json:"riderEmail"`
	CreatedAt       time.Time `json:"createdAt"`
}

// GetParcel retrieves a parcel from cache.
func (s *CacheStore) GetParcel(ctx context.Context, parcelID string) (*CachedParcel, error) {
	key := parcelCachePrefix + parcelID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var parcel CachedParcel
	if err := json.Unmarshal(data, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// SetParcel stores a parcel in cache.
func (s *CacheStore) SetParcel(ctx context.Context, parcel *CachedParcel) error {
	key := parcelCachePrefix + parcel.ID
	data, err := json.Marshal(parcel)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ParcelCacheTTL).Err()
}

// InvalidateParcel removes a parcel from cache.
func (s *CacheStore) InvalidateParcel(ctx context.Context, parcelID string) error {
	key := parcelCachePrefix + parcelID
	return s.client.Del(ctx, key).Err()
}

// AddAvailableRider adds a rider to the available set for fast lookup.
func (s *CacheStore) AddAvailableRider(ctx context.Context, riderID string) error {
	return s.client.SAdd(ctx, availableRidersKey, riderID).Err()
}

// RemoveAvailableRider removes a rider from the available set.
func (s *CacheStore) RemoveAvailableRider(ctx context.Context, riderID string) error {
	return s.client.SRem(ctx, availableRidersKey, riderID).Err()
}

// GetAvailableRiders returns all available rider IDs.
func (s *CacheStore) GetAvailableRiders(ctx context.Context) ([]string, error) {
	return s.client.SMembers(ctx, availableRidersKey).Result()
}
