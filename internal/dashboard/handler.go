package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/auth"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/clients"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/metrics"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// GET /dashboard/fetch-products/:userId
// GET /dashboard/fetch-products?userId=
func FetchProductsHandler(svc *Service, logger *logrus.Entry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.RequestedUserID(c)
		if err != nil {
			metrics.FetchRequests.WithLabelValues("bad_request").Inc()
			return err
		}

		result, err := svc.FetchProducts(c.UserContext(), userID)
		switch {
		case errors.Is(err, users.ErrNotFound):
			metrics.FetchRequests.WithLabelValues("user_not_found").Inc()
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		case errors.Is(err, clients.ErrNoResults):
			metrics.FetchRequests.WithLabelValues("no_results").Inc()
			return fiber.NewError(fiber.StatusNotFound, "No products found")
		case err != nil:
			metrics.FetchRequests.WithLabelValues("error").Inc()
			logger.WithError(err).WithField("user_id", userID).Error("error fetching products")
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch product data")
		}

		metrics.FetchRequests.WithLabelValues("ok").Inc()
		return c.JSON(result)
	}
}

// GET /dashboard/products?userId=
func ListStoredProductsHandler(svc *Service, logger *logrus.Entry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.RequestedUserID(c)
		if err != nil {
			return err
		}

		products, err := svc.StoredProducts(c.UserContext(), userID)
		if err != nil {
			logger.WithError(err).WithField("user_id", userID).Error("list stored products")
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load products")
		}
		return c.JSON(fiber.Map{"products": products, "count": len(products)})
	}
}

// GET /dashboard/products/export?userId=
func ExportProductsHandler(svc *Service, logger *logrus.Entry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.RequestedUserID(c)
		if err != nil {
			return err
		}

		products, err := svc.StoredProducts(c.UserContext(), userID)
		if err != nil {
			logger.WithError(err).WithField("user_id", userID).Error("export stored products")
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load products")
		}

		buf, err := BuildProductWorkbook(products)
		if err != nil {
			logger.WithError(err).WithField("user_id", userID).Error("build workbook")
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
		}

		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename="+exportFilePattern, time.Now().Format("20060102")))
		return c.Send(buf.Bytes())
	}
}

// GET /dashboard/price-changes?userId=&limit=
func ListPriceChangesHandler(svc *Service, logger *logrus.Entry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.RequestedUserID(c)
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 0)
		if limit < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
		}

		logs, err := svc.PriceChanges(c.UserContext(), userID, limit)
		if err != nil {
			logger.WithError(err).WithField("user_id", userID).Error("list price changes")
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load price changes")
		}
		return c.JSON(fiber.Map{"changes": logs, "count": len(logs)})
	}
}
