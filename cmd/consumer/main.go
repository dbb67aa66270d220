package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"foodlocker/internal/client"
	"foodlocker/internal/client/consumer"
	"foodlocker/internal/config"
	"foodlocker/internal/domain"
	"foodlocker/internal/imagemap"
	"foodlocker/internal/infrastructure/logger"
)

const usage = `usage: consumer <command> [flags]

commands:
  stadiums                      list stadiums
  categories -stadium <id>      list food categories in a stadium
  brands -category <id>         list brands in a category
  menu -brand <id>              show a brand's menu
  add -brand <id> -item <id> [-qty n]   add a menu item to the cart
  cart                          show the cart
  seat -block <b> -number <n>   record the seat for delivery
  checkout -delivery <m> -payment <p> [-user <id>]   place the order
  track -order <id>             follow an order until pickup
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	api := client.NewAPI(cfg.Client.BaseURL, cfg.Client.RequestTimeout)
	cart := consumer.NewCart(consumer.NewFileStorage(statePath()))

	images, err := imagemap.Bundled()
	if err != nil {
		log.Fatalf("loading image table: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &app{cfg: cfg, api: api, cart: cart, images: images, logger: zapLogger}

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func statePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".foodlocker-consumer.json"
	}
	return filepath.Join(home, ".foodlocker-consumer.json")
}

type app struct {
	cfg    *config.Config
	api    *client.API
	cart   *consumer.Cart
	images *imagemap.Table
	logger *zap.Logger
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "stadiums":
		return a.stadiums(ctx)
	case "categories":
		return a.categories(ctx, args)
	case "brands":
		return a.brands(ctx, args)
	case "menu":
		return a.menu(ctx, args)
	case "add":
		return a.add(ctx, args)
	case "cart":
		return a.showCart()
	case "seat":
		return a.seat(args)
	case "checkout":
		return a.checkout(ctx, args)
	case "track":
		return a.track(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) stadiums(ctx context.Context) error {
	stadiums, err := a.api.GetStadiums(ctx)
	if err != nil {
		return err
	}
	for _, s := range stadiums {
		fmt.Printf("%s  %s\n", s.ID, s.Name)
	}
	return nil
}

func (a *app) categories(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	stadiumID := fs.String("stadium", "", "stadium id")
	fs.Parse(args)
	if *stadiumID == "" {
		return fmt.Errorf("-stadium is required")
	}

	categories, err := a.api.GetCategories(ctx, *stadiumID)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%s  %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *app) brands(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("brands", flag.ExitOnError)
	categoryID := fs.String("category", "", "category id")
	fs.Parse(args)
	if *categoryID == "" {
		return fmt.Errorf("-category is required")
	}

	brands, err := a.api.GetBrands(ctx, *categoryID)
	if err != nil {
		return err
	}
	for _, b := range brands {
		fmt.Printf("%s  %s\n", b.ID, b.DisplayName())
	}
	return nil
}

// menu fetches the brand and its items concurrently.
func (a *app) menu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)
	brandID := fs.String("brand", "", "brand id")
	fs.Parse(args)
	if *brandID == "" {
		return fmt.Errorf("-brand is required")
	}

	var (
		brand *domain.Brand
		items []domain.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		brand, err = a.api.GetBrand(gctx, *brandID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = a.api.GetItems(gctx, *brandID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%s\n\n", brand.DisplayName())
	for _, item := range items {
		image := item.Image
		if image == "" {
			image = a.images.Resolve(item.Name, item.NameEn)
		}
		fmt.Printf("%s  %s  %d KRW  %s\n", item.ID, item.DisplayName(), item.Price, image)
	}
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	brandID := fs.String("brand", "", "brand id")
	itemID := fs.String("item", "", "item id")
	qty := fs.Int("qty", 1, "quantity")
	fs.Parse(args)
	if *brandID == "" || *itemID == "" {
		return fmt.Errorf("-brand and -item are required")
	}

	items, err := a.api.GetItems(ctx, *brandID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.ID != *itemID {
			continue
		}
		image := item.Image
		if image == "" {
			image = a.images.Resolve(item.Name, item.NameEn)
		}
		err := a.cart.AddItem(consumer.CartItem{
			LineItem: domain.LineItem{
				ID:       item.ID,
				Name:     item.DisplayName(),
				Price:    item.Price,
				Quantity: *qty,
				Image:    image,
			},
			BrandID: *brandID,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added %d x %s\n", *qty, item.DisplayName())
		return nil
	}
	return fmt.Errorf("item %s not found in brand %s", *itemID, *brandID)
}

func (a *app) showCart() error {
	items, err := a.cart.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	for _, it := range items {
		fmt.Printf("%d x %s  %d KRW\n", it.Quantity, it.Name, it.Price*int64(it.Quantity))
	}
	total, err := a.cart.Total()
	if err != nil {
		return err
	}
	fmt.Printf("subtotal: %d KRW\n", total)
	return nil
}

func (a *app) seat(args []string) error {
	fs := flag.NewFlagSet("seat", flag.ExitOnError)
	block := fs.String("block", "", "seat block")
	number := fs.String("number", "", "seat number")
	fs.Parse(args)
	if *block == "" || *number == "" {
		return fmt.Errorf("-block and -number are required")
	}

	if err := a.cart.SetSeat(consumer.Seat{Block: *block, Number: *number}); err != nil {
		return err
	}
	fmt.Printf("seat recorded: block %s, number %s\n", *block, *number)
	return nil
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	userID := fs.String("user", "", "user id")
	delivery := fs.String("delivery", "", "delivery method: locker, seat or pickup")
	payment := fs.String("payment", "card", "payment method")
	fs.Parse(args)

	checkout := consumer.NewCheckout(a.cart, a.api)

	method := domain.DeliveryMethod(*delivery)
	pricing, err := checkout.Price(method)
	if err != nil {
		return err
	}
	fmt.Printf("subtotal %d, delivery %d, discount -%d, total %d KRW\n",
		pricing.Subtotal, pricing.DeliveryFee, pricing.Discount, pricing.Total)

	order, err := checkout.Submit(ctx, consumer.SubmitInput{
		UserID:         *userID,
		DeliveryMethod: method,
		PaymentMethod:  *payment,
	})
	if err != nil {
		return err
	}

	fmt.Printf("order placed: %s\n", order.ID)
	return a.follow(ctx, order.ID)
}

func (a *app) track(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	orderID := fs.String("order", "", "order id")
	fs.Parse(args)
	if *orderID == "" {
		return fmt.Errorf("-order is required")
	}
	return a.follow(ctx, *orderID)
}

func (a *app) follow(ctx context.Context, orderID string) error {
	tracker := consumer.NewTracker(a.api, a.cfg.Client.OrderPollInterval, a.logger)

	var last *domain.Order
	err := tracker.Track(ctx, orderID, func(order *domain.Order) {
		if last == nil || last.Status != order.Status {
			fmt.Printf("status: %s\n", order.Status)
		}
		last = order
	})
	if err != nil {
		return err
	}

	locker, err := consumer.AssignLocker(last)
	if err != nil {
		return err
	}
	fmt.Printf("pickup ready: locker %d (%s), code %s, qr %s\n",
		locker.Number, locker.Location, locker.Code, locker.QRCode)
	return nil
}
