// Command seed writes the sample bakery catalog into the document store.
// It refuses to touch an existing catalog unless -force is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/hearthside/vesta/internal"
	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/store"
)

var catalog = map[string]domain.Product{
	"product1": {
		Name:        "Chocolate Cake",
		Description: "Delicious chocolate cake with rich frosting",
		Price:       35.99,
		Image:       "/prod1.png",
		Category:    "cakes",
		InStock:     true,
	},
	"product2": {
		Name:        "Strawberry Cupcakes",
		Description: "Fresh strawberry cupcakes with cream cheese frosting",
		Price:       3.99,
		Image:       "/prod2.png",
		Category:    "cupcakes",
		InStock:     true,
	},
	"product3": {
		Name:        "Blueberry Muffins",
		Description: "Moist blueberry muffins made with fresh berries",
		Price:       2.99,
		Image:       "/prod3.png",
		Category:    "muffins",
		InStock:     true,
	},
	"product4": {
		Name:        "Vanilla Birthday Cake",
		Description: "Classic vanilla cake with colorful sprinkles",
		Price:       30.99,
		Image:       "/2nd.png",
		Category:    "cakes",
		InStock:     true,
	},
	"product5": {
		Name:        "Chocolate Chip Cookies",
		Description: "Chewy chocolate chip cookies with walnuts",
		Price:       1.99,
		Image:       "/4th.png",
		Category:    "cookies",
		InStock:     true,
	},
	"product6": {
		Name:        "French Baguette",
		Description: "Traditional crispy French baguette",
		Price:       4.99,
		Image:       "/3rf.png",
		Category:    "bread",
		InStock:     true,
	},
}

func run() error {
	force := flag.Bool("force", false, "overwrite an existing catalog")
	flag.Parse()

	ctx := context.Background()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	if cfg.StoreBackend != "firebase" {
		return fmt.Errorf("seeding requires the firebase store backend")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.Firebase.DatabaseURL}, opts...)
	if err != nil {
		return fmt.Errorf("firebase initialization failed: %w", err)
	}

	client, err := store.NewFirebaseClient(ctx, app, cfg.Firebase.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	var existing map[string]domain.Product
	err = client.Get(ctx, "products", &existing)
	if err != nil && !store.IsNotFound(err) {
		return fmt.Errorf("reading existing catalog: %w", err)
	}
	if len(existing) > 0 && !*force {
		return fmt.Errorf("catalog already has %d products; re-run with -force to overwrite", len(existing))
	}

	if err := client.Set(ctx, "products", catalog); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	logger.Info("Catalog seeded", "products", len(catalog))
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
