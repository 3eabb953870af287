// adminctl is the command-line admin dashboard: it logs in against the
// API, lists and filters the catalogue, and drives the product and
// category forms.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"nagabalm/internal/admin"
	"nagabalm/internal/catalog"
	"nagabalm/internal/client"
	"nagabalm/internal/events"
	"nagabalm/internal/model"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: adminctl <command> [flags]

Commands:
  login             -email -password
  logout
  status
  refresh
  products          -category -search -locale
  categories        -locale
  product-create    -slug -price -category -image -name-en -desc-en -name-km -desc-km [-top]
  product-edit      -id plus any product-create flags
  product-delete    -id [-yes]
  category-create   -slug -name-en -name-km
  category-delete   -id [-yes]
  upload            file [file...]`)
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("command required")
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	baseURL := os.Getenv("NAGABALM_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	tokenPath := os.Getenv("NAGABALM_TOKEN_FILE")
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		tokenPath = filepath.Join(home, ".nagabalm", "tokens.json")
	}

	tokens, err := client.NewFileTokenStore(tokenPath)
	if err != nil {
		return err
	}

	api := client.New(baseURL, tokens, logger)
	session := client.NewSession(tokens)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return cmdLogin(ctx, api, rest)
	case "logout":
		return api.Logout()
	case "status":
		if session.Valid() {
			fmt.Println("session: valid")
		} else {
			fmt.Println("session: expired or missing, log in again")
		}
		return nil
	case "refresh":
		return api.Refresh(ctx)
	case "products":
		return cmdProducts(ctx, api, rest)
	case "categories":
		return cmdCategories(ctx, api, rest)
	case "product-create", "product-edit":
		return cmdProductForm(ctx, api, command == "product-edit", rest)
	case "product-delete":
		return cmdProductDelete(ctx, api, rest)
	case "category-create":
		return cmdCategoryCreate(ctx, api, rest)
	case "category-delete":
		return cmdCategoryDelete(ctx, api, rest)
	case "upload":
		return cmdUpload(ctx, api, rest)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func cmdLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("-email and -password are required")
	}

	if err := api.Login(ctx, *email, *password); err != nil {
		return err
	}

	fmt.Println("logged in")
	return nil
}

func cmdProducts(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "all", "category ID filter")
	search := fs.String("search", "", "search term")
	locale := fs.String("locale", "en", "display locale (en or km)")
	fs.Parse(args)

	store := catalog.NewStore(api.Products, api.Categories, zerolog.Nop())

	products, err := store.Filtered(ctx, *category, *search)
	if err != nil {
		return err
	}

	displays := catalog.ToDisplayList(products, model.Locale(*locale))
	for _, d := range displays {
		line := fmt.Sprintf("%-36s  %-24s  $%.2f", d.ID, d.Name, d.Price)
		if d.Label != "" {
			line += "  [" + d.Label + "]"
		}
		fmt.Println(line)
	}
	fmt.Printf("%d product(s)\n", len(displays))
	return nil
}

func cmdCategories(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	locale := fs.String("locale", "en", "display locale (en or km)")
	fs.Parse(args)

	categories, err := api.Categories(ctx)
	if err != nil {
		return err
	}

	for _, c := range categories {
		name := c.Translations.ForLocale(model.Locale(*locale)).Name
		fmt.Printf("%-36s  %-16s  %s\n", c.ID, c.Slug, name)
	}
	fmt.Printf("%d categorie(s)\n", len(categories))
	return nil
}

func productFlags(fs *flag.FlagSet) (*admin.ProductFormValues, *string) {
	v := &admin.ProductFormValues{}
	images := fs.String("image", "", "comma-separated image URLs")

	fs.StringVar(&v.Slug, "slug", "", "product slug")
	fs.StringVar(&v.Price, "price", "", "price in dollars")
	fs.StringVar(&v.CategoryID, "category", "", "category ID")
	fs.BoolVar(&v.IsTopSell, "top", false, "mark as top seller")
	fs.StringVar(&v.NameEN, "name-en", "", "English name")
	fs.StringVar(&v.DescriptionEN, "desc-en", "", "English description")
	fs.StringVar(&v.SizeEN, "size-en", "", "English size label")
	fs.StringVar(&v.NameKM, "name-km", "", "Khmer name")
	fs.StringVar(&v.DescriptionKM, "desc-km", "", "Khmer description")
	fs.StringVar(&v.SizeKM, "size-km", "", "Khmer size label")

	return v, images
}

func cmdProductForm(ctx context.Context, api *client.Client, edit bool, args []string) error {
	fs := flag.NewFlagSet("product-form", flag.ExitOnError)
	id := fs.String("id", "", "product ID (edit only)")
	values, images := productFlags(fs)
	fs.Parse(args)

	if *images != "" {
		values.Images = splitComma(*images)
	}

	bus := events.NewBus(zerolog.Nop())
	form := admin.NewProductForm(api, admin.NewBusNotifier(bus), zerolog.Nop())

	if edit {
		if *id == "" {
			return fmt.Errorf("-id is required for product-edit")
		}
		if err := form.OpenForEdit(ctx, *id); err != nil {
			return err
		}
		merged := mergeProductValues(form.Values(), *values)
		form.SetValues(merged)
	} else {
		form.Open()
		form.SetValues(*values)
	}

	if err := form.Submit(ctx); err != nil {
		return err
	}

	fmt.Println("product saved")
	return nil
}

// mergeProductValues overlays the non-empty CLI flags onto the loaded
// record so an edit only has to name the fields that change.
func mergeProductValues(base, override admin.ProductFormValues) admin.ProductFormValues {
	if override.Slug != "" {
		base.Slug = override.Slug
	}
	if override.Price != "" {
		base.Price = override.Price
	}
	if override.CategoryID != "" {
		base.CategoryID = override.CategoryID
	}
	if len(override.Images) > 0 {
		base.Images = override.Images
	}
	if override.IsTopSell {
		base.IsTopSell = true
	}
	if override.NameEN != "" {
		base.NameEN = override.NameEN
	}
	if override.DescriptionEN != "" {
		base.DescriptionEN = override.DescriptionEN
	}
	if override.SizeEN != "" {
		base.SizeEN = override.SizeEN
	}
	if override.NameKM != "" {
		base.NameKM = override.NameKM
	}
	if override.DescriptionKM != "" {
		base.DescriptionKM = override.DescriptionKM
	}
	if override.SizeKM != "" {
		base.SizeKM = override.SizeKM
	}
	return base
}

func cmdProductDelete(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("product-delete", flag.ExitOnError)
	id := fs.String("id", "", "product ID")
	yes := fs.Bool("yes", false, "skip confirmation")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	bus := events.NewBus(zerolog.Nop())
	form := admin.NewProductForm(api, admin.NewBusNotifier(bus), zerolog.Nop())

	confirm := confirmPrompt(fmt.Sprintf("delete product %s?", *id), *yes)
	if err := form.Delete(ctx, *id, confirm); err != nil {
		return err
	}

	fmt.Println("done")
	return nil
}

func cmdCategoryCreate(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("category-create", flag.ExitOnError)
	v := admin.CategoryFormValues{}
	fs.StringVar(&v.Slug, "slug", "", "category slug")
	fs.StringVar(&v.NameEN, "name-en", "", "English name")
	fs.StringVar(&v.NameKM, "name-km", "", "Khmer name")
	fs.Parse(args)

	bus := events.NewBus(zerolog.Nop())
	form := admin.NewCategoryForm(api, admin.NewBusNotifier(bus), zerolog.Nop())

	form.Open()
	form.SetValues(v)
	if err := form.Submit(ctx); err != nil {
		return err
	}

	fmt.Println("category saved")
	return nil
}

func cmdCategoryDelete(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("category-delete", flag.ExitOnError)
	id := fs.String("id", "", "category ID")
	yes := fs.Bool("yes", false, "skip confirmation")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	bus := events.NewBus(zerolog.Nop())
	form := admin.NewCategoryForm(api, admin.NewBusNotifier(bus), zerolog.Nop())

	confirm := confirmPrompt(fmt.Sprintf("delete category %s?", *id), *yes)
	if err := form.Delete(ctx, *id, confirm); err != nil {
		return err
	}

	fmt.Println("done")
	return nil
}

func cmdUpload(ctx context.Context, api *client.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one file is required")
	}

	files := make([]client.UploadFile, 0, len(args))
	handles := make([]*os.File, 0, len(args))
	defer func() {
		for _, f := range handles {
			f.Close()
		}
	}()

	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		handles = append(handles, f)
		files = append(files, client.UploadFile{Name: filepath.Base(path), Content: f})
	}

	urls, err := api.UploadImages(ctx, files)
	if err != nil {
		return err
	}

	for _, u := range urls {
		fmt.Println(u)
	}
	return nil
}

// confirmPrompt asks on stdin unless -yes was passed.
func confirmPrompt(question string, skip bool) func() bool {
	if skip {
		return func() bool { return true }
	}
	return func() bool {
		fmt.Printf("%s [y/N] ", question)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
