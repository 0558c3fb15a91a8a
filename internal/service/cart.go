package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/store"
)

// cartService implements domain.CartService over the document store.
//
// Mutations are read-modify-write with no locking. Concurrent writes to one
// user's cart can lose an update (last write wins); a single shopper on a
// storefront does not race themselves in practice.
type cartService struct {
	store   store.Client
	catalog domain.CatalogService
	now     func() time.Time
}

// NewCartService creates the cart service. Pricing is always done against
// the live catalog at read time; nothing priced is stored in the cart.
func NewCartService(s store.Client, catalog domain.CatalogService) domain.CartService {
	return &cartService{store: s, catalog: catalog, now: time.Now}
}

func (s *cartService) cartPath(uid string) string {
	return "carts/" + uid
}

// load reads the stored cart record. Absent records come back as
// ErrCartNotFound; callers decide whether absence is an error.
func (s *cartService) load(ctx context.Context, uid string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := s.store.Get(ctx, s.cartPath(uid), &cart); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrCartNotFound
		}
		return nil, domain.Internal(err, "cart.load", "failed to load cart")
	}
	if cart.Items == nil {
		cart.Items = make(map[string]domain.CartItem)
	}
	return &cart, nil
}

// save rewrites the whole cart record with a fresh updatedAt.
func (s *cartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = domain.FormatTime(s.now())
	if err := s.store.Set(ctx, s.cartPath(cart.UserID), cart); err != nil {
		return domain.Internal(err, "cart.save", "failed to save cart")
	}
	return nil
}

// Get prices the cart against the live catalog. Lines whose product has
// disappeared are dropped from the view without touching the stored record.
func (s *cartService) Get(ctx context.Context, uid string) (*domain.PricedCart, error) {
	cart, err := s.load(ctx, uid)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return &domain.PricedCart{Items: []domain.PricedItem{}}, nil
		}
		return nil, err
	}

	ids := make([]string, 0, len(cart.Items))
	for id := range cart.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	priced := &domain.PricedCart{Items: []domain.PricedItem{}}
	for _, id := range ids {
		item := cart.Items[id]
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if domain.IsCode(err, domain.ENOTFOUND) {
				continue
			}
			return nil, err
		}

		line := domain.PricedItem{
			ID:        id,
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  item.Quantity,
			ItemTotal: product.Price * float64(item.Quantity),
		}
		priced.Items = append(priced.Items, line)
		priced.Total += line.ItemTotal
	}
	return priced, nil
}

// Add merges quantity into an existing line for the product, or creates a
// new line. The cart record itself is created lazily on first add.
func (s *cartService) Add(ctx context.Context, uid, productID string, quantity int) (*domain.PricedCart, error) {
	const op = "cart.add"

	if quantity < 1 {
		return nil, domain.Invalid(op, "Valid quantity is required")
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.load(ctx, uid)
	if err != nil {
		if !domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		cart = &domain.Cart{UserID: uid, Items: make(map[string]domain.CartItem)}
	}

	merged := false
	for id, item := range cart.Items {
		if item.ProductID == productID {
			item.Quantity += quantity
			cart.Items[id] = item
			merged = true
			break
		}
	}
	if !merged {
		cart.Items[uuid.NewString()] = domain.CartItem{ProductID: productID, Quantity: quantity}
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid)
}

func (s *cartService) UpdateQuantity(ctx context.Context, uid, itemID string, quantity int) (*domain.PricedCart, error) {
	const op = "cart.update"

	if quantity < 1 {
		return nil, domain.Invalid(op, "Valid quantity is required")
	}

	cart, err := s.load(ctx, uid)
	if err != nil {
		// A missing cart and a missing line report the same way; the
		// caller asked about a line, not the record.
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	item, ok := cart.Items[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}
	item.Quantity = quantity
	cart.Items[itemID] = item

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid)
}

func (s *cartService) Remove(ctx context.Context, uid, itemID string) (*domain.PricedCart, error) {
	cart, err := s.load(ctx, uid)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if _, ok := cart.Items[itemID]; !ok {
		return nil, ErrItemNotFound
	}
	delete(cart.Items, itemID)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid)
}

// Clear empties the cart but keeps the record present, so a cleared cart and
// a never-created cart stay distinguishable.
func (s *cartService) Clear(ctx context.Context, uid string) (*domain.PricedCart, error) {
	cart, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}

	cart.Items = make(map[string]domain.CartItem)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid)
}
