package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	root := app.Group("/api")

	auth := root.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Put("/reset-password/:token", handler.ResetPassword)
	auth.Get("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/check-auth", handler.AuthRequired, handler.CheckAuth)

	user := root.Group("/user", handler.AuthRequired)
	user.Get("/me", handler.GetProfile)
	user.Put("/me", handler.UpdateProfile)
	user.Put("/me/password", handler.ChangePassword)
	user.Delete("/me", handler.DeleteAccount)

	dashboard := root.Group("/dashboard", handler.AuthRequired)
	dashboard.Get("/analytics", handler.GetAnalytics)
	dashboard.Get("/:date", handler.GetDashboardDay)

	nutrition := root.Group("/nutrition", handler.AuthRequired)
	nutrition.Post("/search", handler.SearchFoods)
	nutrition.Post("/", handler.SaveNutrition)
	nutrition.Get("/", handler.ListNutrition)
	nutrition.Get("/:date", handler.GetNutritionByDate)
	nutrition.Delete("/:id", handler.DeleteNutrition)

	workout := root.Group("/workout", handler.AuthRequired)
	workout.Post("/search", handler.SearchActivities)
	workout.Post("/", handler.SaveWorkout)
	workout.Get("/", handler.ListWorkouts)
	workout.Get("/:date", handler.GetWorkoutByDate)
	workout.Delete("/:id", handler.DeleteWorkout)

	ai := root.Group("/ai", handler.AuthRequired)
	ai.Post("/chat", handler.Chat)
}
