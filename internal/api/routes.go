package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"horizon/horizon-app/internal/service"
)

// SetupRoutes registers every HTTP route on the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	goalService service.GoalService,
	personService service.PersonService,
	dateService service.DateService,
	activityService service.ActivityService,
	todoService service.TodoService,
	insightService service.InsightService,
	assistantService service.AssistantService,
) {
	authHandler := NewAuthHandler(authService)
	goalHandler := NewGoalHandler(goalService)
	personHandler := NewPersonHandler(personService)
	dateHandler := NewDateHandler(dateService)
	activityHandler := NewActivityHandler(activityService)
	todoHandler := NewTodoHandler(todoService)
	insightHandler := NewInsightHandler(insightService)
	assistantHandler := NewAssistantHandler(assistantService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.GetProfile)
		protected.PUT("/me", authHandler.UpdateProfile)

		goalGroup := protected.Group("/goals")
		{
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.GET("", goalHandler.GetGoals)
			goalGroup.POST("/advance-week", goalHandler.AdvanceWeek)
			goalGroup.GET("/:goalId", goalHandler.GetGoal)
			goalGroup.PUT("/:goalId", goalHandler.UpdateGoal)
			goalGroup.DELETE("/:goalId", goalHandler.DeleteGoal)
			goalGroup.POST("/:goalId/logs", goalHandler.LogProgress)
		}

		peopleGroup := protected.Group("/people")
		{
			peopleGroup.POST("", personHandler.CreatePerson)
			peopleGroup.GET("", personHandler.GetPeople)
			peopleGroup.GET("/:personId", personHandler.GetPerson)
			peopleGroup.PUT("/:personId", personHandler.UpdatePerson)
			peopleGroup.DELETE("/:personId", personHandler.DeletePerson)
			peopleGroup.GET("/:personId/dates", dateHandler.GetDatesForPerson)
			peopleGroup.POST("/:personId/avatar/upload-url", personHandler.RequestAvatarUpload)
			peopleGroup.POST("/:personId/avatar/confirm", personHandler.ConfirmAvatarUpload)
		}

		dateGroup := protected.Group("/dates")
		{
			dateGroup.POST("", dateHandler.CreateDate)
			dateGroup.GET("", dateHandler.GetDates)
			dateGroup.GET("/upcoming", dateHandler.GetUpcoming)
			dateGroup.PUT("/:dateId", dateHandler.UpdateDate)
			dateGroup.DELETE("/:dateId", dateHandler.DeleteDate)
		}

		activityGroup := protected.Group("/activities")
		{
			activityGroup.POST("", activityHandler.LogActivity)
			activityGroup.GET("", activityHandler.GetActivities)
			activityGroup.DELETE("/:activityId", activityHandler.DeleteActivity)
		}

		todoGroup := protected.Group("/todos")
		{
			todoGroup.POST("", todoHandler.CreateTodo)
			todoGroup.GET("", todoHandler.GetTodos)
			todoGroup.PUT("/:todoId", todoHandler.UpdateTodo)
			todoGroup.DELETE("/:todoId", todoHandler.DeleteTodo)
			todoGroup.POST("/parse", todoHandler.ParseTasks)
			todoGroup.POST("/parsed", todoHandler.CreateParsedTodos)
		}

		insightGroup := protected.Group("/insights")
		{
			insightGroup.GET("/relationships", insightHandler.GetRelationships)
			insightGroup.GET("/balance", insightHandler.GetBalance)
			insightGroup.GET("/drift", insightHandler.GetDrift)
			insightGroup.GET("/nudges", insightHandler.GetNudges)
			insightGroup.GET("/summary", insightHandler.GetSummary)
		}

		assistantGroup := protected.Group("/assistant")
		{
			assistantGroup.POST("/gift-ideas", assistantHandler.GiftIdeas)
			assistantGroup.POST("/activity-ideas", assistantHandler.ActivityIdeas)
		}
	}
}
