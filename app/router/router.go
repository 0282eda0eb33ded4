package router

import (
	"net/http"
	"strings"

	"estampa-studio/app/controller"
)

type Controllers struct {
	Product       *controller.ProductController
	Customization *controller.CustomizationController
	Proof         *controller.ProofController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalog routes
	http.HandleFunc("/products", controllers.Product.ListProducts)
	http.HandleFunc("/products/", controllers.Product.GetProduct)

	// Create customization session
	http.HandleFunc("/customize/sessions", controllers.Customization.CreateSession)

	// Session actions
	// Path format: /customize/sessions/{id}[/action[/slot]]
	http.HandleFunc("/customize/sessions/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/customize/sessions/")
		if path == "" {
			http.Error(w, "session id parameter is required", http.StatusBadRequest)
			return
		}

		// Collage slot routes (must be before the generic suffix checks)
		if strings.Contains(path, "/collage/") {
			if r.Method == http.MethodPost {
				controllers.Customization.UploadToSlot(w, r, path)
				return
			}
			if r.Method == http.MethodDelete {
				controllers.Customization.ClearSlot(w, r, path)
				return
			}
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if strings.HasSuffix(path, "/collage") && r.Method == http.MethodDelete {
			controllers.Customization.ClearCollage(w, r, path)
			return
		}

		if strings.HasSuffix(path, "/photo") {
			if r.Method == http.MethodPost {
				controllers.Customization.UploadPhoto(w, r, path)
				return
			}
			if r.Method == http.MethodDelete {
				controllers.Customization.ClearPhoto(w, r, path)
				return
			}
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if r.Method == http.MethodPost {
			switch {
			case strings.HasSuffix(path, "/select"):
				controllers.Customization.Select(w, r, path)
				return
			case strings.HasSuffix(path, "/template"):
				controllers.Customization.SelectTemplate(w, r, path)
				return
			case strings.HasSuffix(path, "/quantity"):
				controllers.Customization.SetQuantity(w, r, path)
				return
			case strings.HasSuffix(path, "/text"):
				controllers.Customization.SetText(w, r, path)
				return
			case strings.HasSuffix(path, "/zoom-in"):
				controllers.Customization.Canvas(w, r, path, "zoom-in")
				return
			case strings.HasSuffix(path, "/zoom-out"):
				controllers.Customization.Canvas(w, r, path, "zoom-out")
				return
			case strings.HasSuffix(path, "/rotate"):
				controllers.Customization.Canvas(w, r, path, "rotate")
				return
			case strings.HasSuffix(path, "/continue"):
				controllers.Customization.Continue(w, r, path)
				return
			case strings.HasSuffix(path, "/back"):
				controllers.Customization.Back(w, r, path)
				return
			case strings.HasSuffix(path, "/submit"):
				controllers.Customization.Submit(w, r, path)
				return
			}
		}

		if r.Method == http.MethodGet {
			if strings.HasSuffix(path, "/preview") {
				controllers.Customization.Preview(w, r, path)
				return
			}
			if strings.HasSuffix(path, "/proof") {
				controllers.Proof.GetProof(w, r, path)
				return
			}
			// Otherwise, treat as GET /customize/sessions/:id
			if !strings.Contains(path, "/") {
				controllers.Customization.GetSession(w, r, path)
				return
			}
		}

		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}
