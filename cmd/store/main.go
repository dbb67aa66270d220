package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"foodlocker/internal/client"
	"foodlocker/internal/client/store"
	"foodlocker/internal/config"
	"foodlocker/internal/domain"
	"foodlocker/internal/infrastructure/logger"
)

func main() {
	username := flag.String("username", "", "store manager username")
	password := flag.String("password", "", "store manager password")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("-username and -password are required")
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	login, err := api.Login(ctx, *username, *password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	manager := login.Manager
	fmt.Printf("signed in as %s (%s, %s)\n", manager.Username, manager.BrandName, manager.StadiumName)

	scope := domain.ManagerScope{IsAdmin: manager.IsAdmin}
	if manager.BrandID != nil {
		scope.BrandID = *manager.BrandID
	}

	queue := store.NewQueue(api, scope, cfg.Client.QueuePollInterval, zapLogger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return queue.Run(gctx, render)
	})

	g.Go(func() error {
		return readCommands(gctx, queue)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Fatal("store app failed", zap.Error(err))
	}
}

func render(orders []domain.Order) {
	fmt.Printf("\n== queue (%d orders) ==\n", len(orders))
	for _, o := range orders {
		fmt.Printf("[%s] %s  %d KRW  %s", o.Status, o.ID, o.Total, o.DeliveryMethod)
		if o.SeatBlock != "" {
			fmt.Printf("  seat %s-%s", o.SeatBlock, o.SeatNumber)
		}
		fmt.Println()
		for _, item := range o.Items {
			fmt.Printf("    %d x %s\n", item.Quantity, item.Name)
		}
	}
	fmt.Print("order id to advance > ")
}

// readCommands advances an order per input line. Input is handled in its own
// goroutine so a slow update never stalls the polling loop.
func readCommands(ctx context.Context, queue *store.Queue) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		orderID := strings.TrimSpace(scanner.Text())
		if orderID == "" {
			continue
		}

		next, err := queue.Advance(ctx, orderID)
		if err != nil {
			fmt.Printf("cannot advance %s: %v\n", orderID, err)
			continue
		}
		fmt.Printf("order %s -> %s\n", orderID, next)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
