package main

import (
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"

	root "github.com/noirwear/storefront-backend"
	"github.com/noirwear/storefront-backend/api"
	"github.com/noirwear/storefront-backend/catalog"
	"github.com/noirwear/storefront-backend/notifications"
	"github.com/noirwear/storefront-backend/notifications/mailtemplates"
	"github.com/noirwear/storefront-backend/notifications/sendgrid"
	"github.com/noirwear/storefront-backend/notifications/smtp"
	"github.com/noirwear/storefront-backend/shipping"
	"github.com/noirwear/storefront-backend/stripe"
)

func main() {
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.String("logLevel", "info", "log level (debug, info, warn, error)")
	flag.String("siteURL", "https://noirwear.shop", "canonical storefront URL")
	flag.StringSlice("corsOrigins", []string{"https://noirwear.shop"}, "origins allowed by CORS")
	flag.StringSlice("devOrigins", nil, "origins allowed to override the redirect base")
	flag.String("stripeApiSecret", "", "Stripe secret API key")
	flag.String("stripeWebhookSecret", "", "Stripe webhook signing secret")
	flag.String("currency", "gbp", "ISO currency code for line items")
	flag.StringSlice("shipCountries", nil, "countries offered in Stripe address collection (empty means all)")
	flag.String("homeCountry", "GB", "home market country code")
	flag.StringSlice("regionalCountries", []string{"IE", "FR", "DE", "NL", "BE", "ES", "IT"},
		"countries served by the regional shipping rate")
	flag.Int64("freeShippingThreshold", 10000, "subtotal (minor units) for free home shipping, 0 disables")
	flag.String("shippingRateStandard", "", "Stripe shipping rate id: home standard")
	flag.String("shippingRateExpress", "", "Stripe shipping rate id: home express")
	flag.String("shippingRateFree", "", "Stripe shipping rate id: home free over threshold")
	flag.String("shippingRateRegional", "", "Stripe shipping rate id: regional")
	flag.String("shippingRateInternational", "", "Stripe shipping rate id: international")
	flag.String("geoCountryHeader", "", "request header with the platform geo country")
	flag.String("cdnCountryHeader", "", "request header with the CDN country")
	flag.String("emailFromAddress", "orders@noirwear.shop", "receipt sender address")
	flag.String("emailFromName", "NOIRWEAR", "receipt sender name")
	flag.String("emailCCAddress", "", "internal copy of every receipt")
	flag.String("sendgridAPIKey", "", "SendGrid API key (takes precedence over SMTP)")
	flag.String("smtpServer", "", "SMTP server host")
	flag.Int("smtpPort", 587, "SMTP server port")
	flag.String("smtpUsername", "", "SMTP username")
	flag.String("smtpPassword", "", "SMTP password")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("NOIRWEAR")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	log.Init(viper.GetString("logLevel"), "stdout", nil)
	host := viper.GetString("host")
	port := viper.GetInt("port")

	stripeConf := &stripe.Config{
		APIKey:               viper.GetString("stripeApiSecret"),
		WebhookSecret:        viper.GetString("stripeWebhookSecret"),
		SiteURL:              viper.GetString("siteURL"),
		DevOrigins:           viper.GetStringSlice("devOrigins"),
		Currency:             viper.GetString("currency"),
		AllowedShipCountries: viper.GetStringSlice("shipCountries"),
		ReceiptCCAddress:     viper.GetString("emailCCAddress"),
		GeoCountryHeader:     viper.GetString("geoCountryHeader"),
		CDNCountryHeader:     viper.GetString("cdnCountryHeader"),
	}
	shippingConf := &shipping.Config{
		HomeCountry:           viper.GetString("homeCountry"),
		RegionalCountries:     viper.GetStringSlice("regionalCountries"),
		FreeShippingThreshold: viper.GetInt64("freeShippingThreshold"),
		StandardRateID:        viper.GetString("shippingRateStandard"),
		ExpressRateID:         viper.GetString("shippingRateExpress"),
		FreeRateID:            viper.GetString("shippingRateFree"),
		RegionalRateID:        viper.GetString("shippingRateRegional"),
		InternationalRateID:   viper.GetString("shippingRateInternational"),
	}

	// load the email templates from the embedded assets
	if err := mailtemplates.Load(root.Assets); err != nil {
		log.Fatalf("could not load email templates: %v", err)
	}
	// create the email notification service, SendGrid when an API key is
	// present, SMTP otherwise. No mail config at all is valid: receipts are
	// skipped and logged.
	var mailService notifications.NotificationService
	switch {
	case viper.GetString("sendgridAPIKey") != "":
		mailService = new(sendgrid.Email)
		if err := mailService.Init(&sendgrid.Config{
			FromName:    viper.GetString("emailFromName"),
			FromAddress: viper.GetString("emailFromAddress"),
			APIKey:      viper.GetString("sendgridAPIKey"),
		}); err != nil {
			log.Fatalf("could not init SendGrid service: %v", err)
		}
		log.Infow("email service created", "type", "sendgrid")
	case viper.GetString("smtpServer") != "":
		mailService = new(smtp.Email)
		if err := mailService.Init(&smtp.Config{
			FromName:     viper.GetString("emailFromName"),
			FromAddress:  viper.GetString("emailFromAddress"),
			SMTPUsername: viper.GetString("smtpUsername"),
			SMTPPassword: viper.GetString("smtpPassword"),
			SMTPServer:   viper.GetString("smtpServer"),
			SMTPPort:     viper.GetInt("smtpPort"),
		}); err != nil {
			log.Fatalf("could not init SMTP service: %v", err)
		}
		log.Infow("email service created", "type", "smtp")
	default:
		log.Warn("no email service configured, receipts will not be sent")
	}

	// create the checkout service over the product catalog
	checkout, err := stripe.NewService(stripeConf, catalog.New(catalog.DefaultEntries()), shippingConf, mailService)
	if err != nil {
		log.Fatalf("could not create the checkout service: %v", err)
	}
	// create the local API server
	api.New(&api.Config{
		Host:             host,
		Port:             port,
		AllowedOrigins:   append(viper.GetStringSlice("corsOrigins"), viper.GetStringSlice("devOrigins")...),
		Checkout:         checkout,
		GeoCountryHeader: stripeConf.GeoCountryHeader,
		CDNCountryHeader: stripeConf.CDNCountryHeader,
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
