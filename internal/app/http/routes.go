package routes

import (
	activitiesapi "round-tracker/internal/api/activities"
	authapi "round-tracker/internal/api/auth"
	imagesapi "round-tracker/internal/api/images"
	parceltypesapi "round-tracker/internal/api/parceltypes"
	periodsapi "round-tracker/internal/api/periods"
	reportsapi "round-tracker/internal/api/reports"
	roundsapi "round-tracker/internal/api/rounds"
	usersapi "round-tracker/internal/api/users"
	"round-tracker/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/date-periods", periodsapi.ListDatePeriods)
	auth.POST("/date-periods", periodsapi.CreateDatePeriod)
	auth.PUT("/date-periods/:id", periodsapi.UpdateDatePeriod)
	auth.DELETE("/date-periods/:id", periodsapi.DeleteDatePeriod)

	auth.GET("/rounds", roundsapi.ListRounds)
	auth.POST("/rounds", roundsapi.CreateRound)
	auth.PUT("/rounds/:id", roundsapi.UpdateRound)
	auth.DELETE("/rounds/:id", roundsapi.DeleteRound)

	auth.GET("/parcel-types", parceltypesapi.ListParcelTypes)
	auth.POST("/parcel-types", parceltypesapi.CreateParcelType)
	auth.POST("/parcel-types/bulk", parceltypesapi.CreateParcelTypesBulk)
	auth.PUT("/parcel-types/:id", parceltypesapi.UpdateParcelType)
	auth.DELETE("/parcel-types/:id", parceltypesapi.DeleteParcelType)

	auth.GET("/activities", activitiesapi.ListActivities)
	auth.POST("/activities", activitiesapi.CreateActivity)
	auth.POST("/activities/bulk", activitiesapi.CreateActivitiesBulk)
	auth.PUT("/activities/:id", activitiesapi.UpdateActivity)
	auth.DELETE("/activities/:id", activitiesapi.DeleteActivity)

	auth.GET("/reports", reportsapi.GetReport)

	auth.POST("/activity-images", imagesapi.UploadActivityImage)
	auth.GET("/activity-images", imagesapi.ListActivityImages)
}
