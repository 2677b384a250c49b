package cmd

import (
	"errors"
	"io"
	"net/http"

	"github.com/ZpokenWeb3/plonky2-gates/plonk"
	"github.com/ZpokenWeb3/plonky2-gates/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var fAddr string

var webApiCmd = &cobra.Command{
	Use:   "web-api",
	Short: "runs a web server filling and checking posted circuit descriptions",
	RunE:  runApi,
}

func healthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "ok",
		"message": "Health check passed",
	}

	c.JSON(http.StatusOK, response)
}

func checkTrace(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raw, err := types.ReadCircuitDescriptionFromRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trace, err := fillTrace(c.Request.Context(), raw)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, types.ErrInvalidDescription) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if err := trace.check(); err != nil {
		response := gin.H{"error": err.Error()}
		var constraintErr *plonk.ConstraintError
		if errors.As(err, &constraintErr) {
			response["row"] = constraintErr.Row
			response["gate"] = constraintErr.GateId
			response["constraint"] = constraintErr.Index
		}
		c.JSON(http.StatusUnprocessableEntity, response)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":  trace.circuit.NumRows(),
		"wires": trace.derivedWires(),
	})
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", healthCheck)
	router.POST("/check", checkTrace)
	return router
}

func runApi(cmd *cobra.Command, args []string) error {
	log.Info().Str("addr", fAddr).Msg("Starting web api")
	return newRouter().Run(fAddr)
}

func init() {
	rootCmd.AddCommand(webApiCmd)
	webApiCmd.Flags().StringVar(&fAddr, "addr", "0.0.0.0:8010", "address the web api listens on")
}
