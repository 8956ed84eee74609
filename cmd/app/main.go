package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	sqliteadapter "github.com/atvirokodosprendimai/pantrypal/internal/adapters/db/sqlite"
	httpadapter "github.com/atvirokodosprendimai/pantrypal/internal/adapters/http"
	rpcadapter "github.com/atvirokodosprendimai/pantrypal/internal/adapters/rpcjson"
	"github.com/atvirokodosprendimai/pantrypal/internal/application"
	"github.com/atvirokodosprendimai/pantrypal/internal/config"
	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
	"github.com/atvirokodosprendimai/pantrypal/internal/logging"
	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "pantry",
		Usage: "Pantry inventory server and CLI",
		Commands: []*cli.Command{
			serverCommand(),
			initCommand(),
			configCommand(),
			statusCommand(),
			itemsCommand(),
			viewsCommand(),
			referenceCommand("categories", "Food categories"),
			referenceCommand("brands", "Brands"),
			referenceCommand("locations", "Storage locations"),
			allergensCommand(),
			shoppingCommand(),
			statsCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "output raw JSON"}
}

// clientAction loads the CLI transport settings before running fn.
func clientAction(fn func(ctx context.Context, c *cli.Command, cfg cliConfig) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return fn(ctx, c, cfg)
	}
}

func optionalUint(c *cli.Command, name string) *uint {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Uint(name)
	return &v
}

func optionalInt(c *cli.Command, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int(name)
	return &v
}

func serverConfig(c *cli.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("addr") {
		cfg.HTTPAddr = c.String("addr")
	}
	if c.IsSet("rpc-socket") {
		cfg.RPCSocket = c.String("rpc-socket")
	}
	if c.IsSet("db-path") {
		cfg.DBPath = c.String("db-path")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, cfg.Validate()
}

func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "addr", Usage: "HTTP listen address (PANTRY_HTTP_ADDR)"},
		&cli.StringFlag{Name: "rpc-socket", Usage: "JSON-RPC unix socket path (PANTRY_RPC_SOCKET)"},
		&cli.StringFlag{Name: "db-path", Usage: "SQLite database path (PANTRY_DB_PATH)"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (PANTRY_LOG_LEVEL)"},
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run the HTTP API and JSON-RPC socket",
		Flags: serverFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := serverConfig(c)
			if err != nil {
				return err
			}
			return runServer(ctx, cfg)
		},
	}
}

func openService(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application.PantryService, func(), error) {
	db, err := sqliteadapter.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = sqliteadapter.Close(db) }

	service := application.NewPantryService(sqliteadapter.NewStore(db),
		application.WithLogger(logger),
		application.WithHorizonDays(cfg.ExpiringDays),
		application.WithLowThreshold(cfg.LowThreshold),
	)
	if err := service.Initialize(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	return service, closeDB, nil
}

func runServer(ctx context.Context, cfg config.Config) error {
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	service, closeDB, err := openService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	router := httpadapter.NewRouter(service, logger)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	rpcSrv, err := rpcadapter.Start(cfg.RPCSocket, service, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = rpcSrv.Close()
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", srv.Addr, "db", cfg.DBPath)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the database schema and seed reference data",
		Flags: append(serverFlags(), jsonFlag()),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := serverConfig(c)
			if err != nil {
				return err
			}
			service, closeDB, err := openService(ctx, cfg, logging.New(cfg.LogLevel))
			if err != nil {
				return err
			}
			defer closeDB()

			counts, err := service.SeedCounts(ctx)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(counts)
			}
			fmt.Printf("initialized %s\n", cfg.DBPath)
			printSeedCounts(counts)
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or change how the CLI reaches the server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "transport", Usage: "uds or http"},
			&cli.StringFlag{Name: "server", Usage: "HTTP base URL"},
			&cli.StringFlag{Name: "socket", Usage: "JSON-RPC unix socket path"},
		},
		Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
			changed := false
			for name, dst := range map[string]*string{"transport": &cfg.Transport, "server": &cfg.Server, "socket": &cfg.Socket} {
				if c.IsSet(name) {
					*dst = strings.TrimSpace(c.String(name))
					changed = true
				}
			}
			if changed {
				cfg = cfg.withDefaults()
				if err := cfg.validate(); err != nil {
					return err
				}
				if err := saveConfig(cfg); err != nil {
					return err
				}
			}
			printKV([][2]string{{"transport", cfg.Transport}, {"server", cfg.Server}, {"socket", cfg.Socket}})
			return nil
		}),
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check the server and show seeded row counts",
		Flags: []cli.Flag{jsonFlag()},
		Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
			var out domain.SeedCounts
			if err := doHealth(ctx, cfg, &out); err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(out)
			}
			printSeedCounts(out)
			return nil
		}),
	}
}

func itemFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: required},
		&cli.UintFlag{Name: "category", Required: required, Usage: "category id"},
		&cli.UintFlag{Name: "location", Required: required, Usage: "location id"},
		&cli.UintFlag{Name: "brand", Usage: "brand id, 0 for none"},
		&cli.StringFlag{Name: "expires", Usage: "expiration date YYYY-MM-DD, empty for none"},
		&cli.IntFlag{Name: "qty", Value: 1},
		&cli.StringFlag{Name: "added", Usage: "added date YYYY-MM-DD, defaults to today"},
		&cli.StringFlag{Name: "notes"},
		jsonFlag(),
	}
}

// applyItemFlags copies the flags the user set onto item.
func applyItemFlags(c *cli.Command, item *domain.PantryItem) {
	if c.IsSet("name") {
		item.Name = c.String("name")
	}
	if c.IsSet("category") {
		item.CategoryID = c.Uint("category")
	}
	if c.IsSet("location") {
		item.LocationID = c.Uint("location")
	}
	if c.IsSet("brand") {
		item.BrandID = c.Uint("brand")
	}
	if c.IsSet("expires") {
		item.ExpirationDate = c.String("expires")
	}
	if c.IsSet("qty") {
		item.Quantity = c.Int("qty")
	}
	if c.IsSet("added") {
		item.AddedDate = c.String("added")
	}
	if c.IsSet("notes") {
		item.Notes = c.String("notes")
	}
}

func itemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "Pantry item commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List items, optionally searched and filtered",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "q", Usage: "name contains (case-insensitive)"},
					&cli.StringFlag{Name: "filter", Usage: "category:<id>, location:<id>, expiring, expired or low"},
					&cli.UintFlag{Name: "category"},
					&cli.UintFlag{Name: "location"},
					jsonFlag(),
				},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out []inventory.ItemView
					if err := doItemsBrowse(ctx, cfg, c.String("q"), c.String("filter"), optionalUint(c, "category"), optionalUint(c, "location"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItemViews(out)
					return nil
				}),
			},
			{
				Name:  "get",
				Usage: "Show one item",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}, jsonFlag()},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out domain.PantryItem
					if err := doItemGet(ctx, cfg, c.Uint("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItem(out)
					return nil
				}),
			},
			{
				Name:  "add",
				Usage: "Add an item",
				Flags: itemFlags(true),
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					item := domain.PantryItem{Quantity: c.Int("qty")}
					applyItemFlags(c, &item)
					var out domain.PantryItem
					if err := doItemAdd(ctx, cfg, item, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItem(out)
					return nil
				}),
			},
			{
				Name:  "update",
				Usage: "Change fields of an item; unset flags keep their current value",
				Flags: append([]cli.Flag{&cli.UintFlag{Name: "id", Required: true}}, itemFlags(false)...),
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var item domain.PantryItem
					if err := doItemGet(ctx, cfg, c.Uint("id"), &item); err != nil {
						return err
					}
					applyItemFlags(c, &item)
					var out domain.PantryItem
					if err := doItemUpdate(ctx, cfg, item, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItem(out)
					return nil
				}),
			},
			{
				Name:  "delete",
				Usage: "Delete an item",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					if err := doItemDelete(ctx, cfg, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted item %d\n", c.Uint("id"))
					return nil
				}),
			},
			{
				Name:  "allergens",
				Usage: "Show or replace the allergens of an item",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "set", Usage: "comma separated allergen ids; empty clears"},
					jsonFlag(),
				},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out []named
					var err error
					if c.IsSet("set") {
						ids, perr := parseUintCSV(c.String("set"))
						if perr != nil {
							return perr
						}
						err = doItemSetAllergens(ctx, cfg, c.Uint("id"), ids, &out)
					} else {
						err = doItemAllergens(ctx, cfg, c.Uint("id"), &out)
					}
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printNamed(out)
					return nil
				}),
			},
		},
	}
}

func viewsCommand() *cli.Command {
	return &cli.Command{
		Name:  "views",
		Usage: "Derived pantry views",
		Commands: []*cli.Command{
			{
				Name:  "expiring",
				Usage: "Items expiring within the horizon",
				Flags: []cli.Flag{&cli.IntFlag{Name: "days", Usage: "horizon in days, server default when unset"}, jsonFlag()},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out []inventory.ItemView
					if err := doViewExpiring(ctx, cfg, optionalInt(c, "days"), &out); err != nil {
						return err
					}
					return printViews(c, out)
				}),
			},
			{
				Name:  "expired",
				Usage: "Items past their expiration date",
				Flags: []cli.Flag{jsonFlag()},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out []inventory.ItemView
					if err := doViewExpired(ctx, cfg, &out); err != nil {
						return err
					}
					return printViews(c, out)
				}),
			},
			{
				Name:  "low",
				Usage: "Items running low, lowest first",
				Flags: []cli.Flag{&cli.IntFlag{Name: "threshold", Usage: "server default when unset"}, jsonFlag()},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out []inventory.ItemView
					if err := doViewLow(ctx, cfg, optionalInt(c, "threshold"), &out); err != nil {
						return err
					}
					return printViews(c, out)
				}),
			},
		},
	}
}

func printViews(c *cli.Command, out []inventory.ItemView) error {
	if c.Bool("json") {
		return printJSON(out)
	}
	printItemViews(out)
	return nil
}

// referenceCommand builds list/add/rename/delete for categories, brands or
// locations. resource is both the RPC method prefix and the HTTP path.
func referenceCommand(resource, usage string) *cli.Command {
	return &cli.Command{
		Name:  resource,
		Usage: usage,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{jsonFlag()},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out []named
					if err := doReferenceList(ctx, cfg, resource, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printNamed(out)
					return nil
				}),
			},
			{
				Name:  "add",
				Flags: []cli.Flag{&cli.StringFlag{Name: "name", Required: true}, jsonFlag()},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out named
					if err := doReferenceAdd(ctx, cfg, resource, c.String("name"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printKV([][2]string{{"id", uintToString(out.ID)}, {"name", out.Name}})
					return nil
				}),
			},
			{
				Name: "rename",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
				},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					if err := doReferenceRename(ctx, cfg, resource, c.Uint("id"), c.String("name")); err != nil {
						return err
					}
					fmt.Printf("renamed %d\n", c.Uint("id"))
					return nil
				}),
			},
			{
				Name:  "delete",
				Usage: "Delete a row; items still pointing at it show as Unknown",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					if err := doReferenceDelete(ctx, cfg, resource, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted %d\n", c.Uint("id"))
					return nil
				}),
			},
		},
	}
}

func allergensCommand() *cli.Command {
	return &cli.Command{
		Name:  "allergens",
		Usage: "List the known allergens",
		Flags: []cli.Flag{jsonFlag()},
		Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
			var out []named
			if err := doReferenceList(ctx, cfg, "allergens", &out); err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(out)
			}
			printNamed(out)
			return nil
		}),
	}
}

func shoppingCommand() *cli.Command {
	entryFlags := func(required bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "item", Required: required},
			&cli.IntFlag{Name: "qty", Value: 1},
			&cli.StringFlag{Name: "added", Usage: "YYYY-MM-DD, defaults to today"},
			&cli.StringFlag{Name: "notes"},
			jsonFlag(),
		}
	}
	return &cli.Command{
		Name:  "shopping",
		Usage: "Shopping list commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{jsonFlag()},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out []domain.ShoppingListEntry
					if err := doShoppingList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printShopping(out)
					return nil
				}),
			},
			{
				Name:  "add",
				Flags: entryFlags(true),
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					entry := domain.ShoppingListEntry{
						ItemName:  c.String("item"),
						Quantity:  c.Int("qty"),
						AddedDate: c.String("added"),
						Notes:     c.String("notes"),
					}
					var out domain.ShoppingListEntry
					if err := doShoppingAdd(ctx, cfg, entry, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printShopping([]domain.ShoppingListEntry{out})
					return nil
				}),
			},
			{
				Name:  "update",
				Usage: "Change an entry; unset flags keep their current value",
				Flags: append([]cli.Flag{&cli.UintFlag{Name: "id", Required: true}}, entryFlags(false)...),
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var list []domain.ShoppingListEntry
					if err := doShoppingList(ctx, cfg, &list); err != nil {
						return err
					}
					id := c.Uint("id")
					var entry *domain.ShoppingListEntry
					for i := range list {
						if list[i].ID == id {
							entry = &list[i]
							break
						}
					}
					if entry == nil {
						return fmt.Errorf("shopping entry %d not found", id)
					}
					if c.IsSet("item") {
						entry.ItemName = c.String("item")
					}
					if c.IsSet("qty") {
						entry.Quantity = c.Int("qty")
					}
					if c.IsSet("added") {
						entry.AddedDate = c.String("added")
					}
					if c.IsSet("notes") {
						entry.Notes = c.String("notes")
					}
					var out domain.ShoppingListEntry
					if err := doShoppingUpdate(ctx, cfg, *entry, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printShopping([]domain.ShoppingListEntry{out})
					return nil
				}),
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					if err := doShoppingDelete(ctx, cfg, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted shopping entry %d\n", c.Uint("id"))
					return nil
				}),
			},
			{
				Name:  "restock",
				Usage: "Add running-low items that are not on the list yet",
				Flags: []cli.Flag{&cli.IntFlag{Name: "threshold", Usage: "server default when unset"}, jsonFlag()},
				Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
					var out []domain.ShoppingListEntry
					if err := doShoppingRestock(ctx, cfg, optionalInt(c, "threshold"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					fmt.Printf("added %d entries\n", len(out))
					printShopping(out)
					return nil
				}),
			},
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Item counts per category and location",
		Flags: []cli.Flag{jsonFlag()},
		Action: clientAction(func(ctx context.Context, c *cli.Command, cfg cliConfig) error {
			var out inventory.Tally
			if err := doStats(ctx, cfg, &out); err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(out)
			}
			printTally(out)
			return nil
		}),
	}
}

func parseUintCSV(input string) ([]uint, error) {
	parts := strings.Split(input, ",")
	out := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		out = append(out, uint(v))
	}
	return out, nil
}
