package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"storefront-client/auth"
	"storefront-client/controller"
	"storefront-client/devserver"
	"storefront-client/models"
	"storefront-client/utils"
	"storefront-client/utils/logger"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Println(`Usage: storefront <command> [args]

Commands:
  whoami                                       show the signed-in user and effective role
  products                                     list the catalog
  add-product <name> <price> <quantity> [desc] create a product (ADMIN)
  delete-product <id>                          delete a product (ADMIN)
  order <product-id> [quantity]                place an order (CLIENT)
  orders                                       list orders (all for ADMIN, own otherwise)
  set-status <order-id> <APPROVED|REJECTED>    moderate an order (ADMIN)
  dev-server                                   run the local stand-in backend`)
}

func main() {
	Init()
	logg := logger.NewLogger(config.LogLevel, config.LogFormat)

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		return
	}

	if args[0] == "dev-server" {
		if err := devserver.New(config, logg).Run(); err != nil {
			logg.Fatalf("dev server failed: %v", err)
		}
		return
	}

	ctx := context.Background()

	session := auth.NewSession()
	if err := signIn(ctx, session); err != nil {
		logg.Fatalf("sign-in failed: %v", err)
	}

	c := controller.NewController(config, session, logg)

	var err error
	switch args[0] {
	case "whoami":
		fmt.Printf("user: %s\nrole: %s\n", session.Username(), session.Role())
	case "products":
		if err = c.Catalog.Load(ctx); err == nil {
			fmt.Println(utils.PrintPrettyJSON(c.Catalog.Products()))
		}
	case "add-product":
		if len(args) < 4 {
			usage()
			os.Exit(2)
		}
		form := models.ProductForm{Name: args[1], Price: args[2], Quantity: args[3]}
		if len(args) > 4 {
			form.Description = args[4]
		}
		c.Catalog.OpenProductForm()
		if err = c.Catalog.SubmitNewProduct(ctx, form); err == nil {
			fmt.Println(utils.PrintPrettyJSON(c.Catalog.Products()))
		}
	case "delete-product":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		if err = c.Catalog.Remove(ctx, args[1]); err == nil {
			fmt.Println(utils.PrintPrettyJSON(c.Catalog.Products()))
		}
	case "order":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		quantity := 1
		if len(args) > 2 {
			quantity, err = strconv.Atoi(args[2])
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid quantity %q\n", args[2])
				os.Exit(2)
			}
		}
		if err = c.Catalog.Order(ctx, args[1], quantity); err == nil {
			fmt.Println("order placed")
		}
	case "orders":
		if err = c.Orders.Load(ctx); err == nil {
			fmt.Println(utils.PrintPrettyJSON(c.Orders.Orders()))
		}
	case "set-status":
		if len(args) < 3 {
			usage()
			os.Exit(2)
		}
		if err = c.Orders.UpdateStatus(ctx, args[1], models.OrderStatus(args[2])); err == nil {
			fmt.Println(utils.PrintPrettyJSON(c.Orders.Orders()))
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signIn installs a bearer token into the session: a pre-issued token from
// config when present, otherwise a password exchange against the token
// endpoint. The browser-delegated OIDC flow of the real deployment is out
// of scope here.
func signIn(ctx context.Context, session *auth.Session) error {
	if config.AccessToken != "" {
		claims := auth.DecodeToken(config.AccessToken)
		session.SetToken(config.AccessToken, claims.PreferredUsername())
		return nil
	}

	if config.Email == "" || config.Password == "" {
		return fmt.Errorf("no access_token configured and no email/password to exchange")
	}

	payload, err := json.Marshal(models.LoginRequest{Email: config.Email, Password: config.Password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.TokenURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: config.RequestTimeout}).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var token models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return err
	}

	claims := auth.DecodeToken(token.AccessToken)
	session.SetToken(token.AccessToken, claims.PreferredUsername())
	return nil
}
