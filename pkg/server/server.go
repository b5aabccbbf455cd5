package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/instruction-gateway/pkg/keys"
	"github.com/code-payments/instruction-gateway/pkg/solana/encoder"
	"github.com/code-payments/instruction-gateway/pkg/solana/token"
)

var errMissingFields = errors.New("missing required fields")

// Server is the JSON/HTTP surface over the instruction encoder and the
// key codecs. It holds no per-request state; handlers are pure
// transformations over their inputs.
type Server struct {
	log *logrus.Entry
}

func New() *Server {
	return &Server{
		log: logrus.StandardLogger().WithField("type", "server"),
	}
}

// Router builds the route table. All core failures surface as a 400
// with a single error message; nothing here is fatal to the process.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests)

	router.GET("/", s.index)
	router.GET("/keypair", s.generateKeypair)
	router.POST("/token/create", s.createToken)
	router.POST("/token/mint", s.mintToken)
	router.POST("/token/account", s.associatedAccount)
	router.POST("/send/token", s.sendToken)
	router.POST("/send/sol", s.sendSol)
	router.POST("/message/sign", s.signMessage)
	router.POST("/message/verify", s.verifyMessage)

	return router
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.WithFields(logrus.Fields{
		"method":   c.Request.Method,
		"path":     c.Request.URL.Path,
		"status":   c.Writer.Status(),
		"duration": time.Since(start),
	}).Debug("handled request")
}

func (s *Server) index(c *gin.Context) {
	ok(c, messageData{Message: "gm gm"})
}

func (s *Server) generateKeypair(c *gin.Context) {
	keypair, err := keys.NewKeypair()
	if err != nil {
		s.log.WithError(err).Error("failed to generate keypair")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to generate keypair"})
		return
	}

	ok(c, keypairData{
		Pubkey: keypair.Address(),
		Secret: keypair.Secret(),
	})
}

func (s *Server) createToken(c *gin.Context) {
	var req createTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errMissingFields)
		return
	}
	if req.MintAuthority == "" || req.Mint == "" {
		badRequest(c, errMissingFields)
		return
	}

	authority, err := keys.DecodeAddress(req.MintAuthority)
	if err != nil {
		badRequest(c, err)
		return
	}
	mint, err := keys.DecodeAddress(req.Mint)
	if err != nil {
		badRequest(c, err)
		return
	}

	instruction, err := encoder.Encode(encoder.InitializeMint{
		Mint:      mint,
		Authority: authority,
		Decimals:  req.Decimals,
	})
	if err != nil {
		badRequest(c, err)
		return
	}

	ok(c, newInstructionData(instruction))
}

func (s *Server) mintToken(c *gin.Context) {
	var req mintTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errMissingFields)
		return
	}
	if req.Mint == "" || req.Destination == "" || req.Authority == "" {
		badRequest(c, errMissingFields)
		return
	}

	mint, err := keys.DecodeAddress(req.Mint)
	if err != nil {
		badRequest(c, err)
		return
	}
	destination, err := keys.DecodeAddress(req.Destination)
	if err != nil {
		badRequest(c, err)
		return
	}
	authority, err := keys.DecodeAddress(req.Authority)
	if err != nil {
		badRequest(c, err)
		return
	}

	instruction, err := encoder.Encode(encoder.MintTo{
		Mint:        mint,
		Destination: destination,
		Authority:   authority,
		Amount:      req.Amount,
	})
	if err != nil {
		badRequest(c, err)
		return
	}

	ok(c, newInstructionData(instruction))
}

func (s *Server) sendToken(c *gin.Context) {
	var req sendTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errMissingFields)
		return
	}
	if req.Destination == "" || req.Mint == "" || req.Owner == "" {
		badRequest(c, errMissingFields)
		return
	}

	owner, err := keys.DecodeAddress(req.Owner)
	if err != nil {
		badRequest(c, err)
		return
	}
	destination, err := keys.DecodeAddress(req.Destination)
	if err != nil {
		badRequest(c, err)
		return
	}
	mint, err := keys.DecodeAddress(req.Mint)
	if err != nil {
		badRequest(c, err)
		return
	}

	instruction, err := encoder.Encode(encoder.TransferToken{
		Owner:       owner,
		Destination: destination,
		Mint:        mint,
		Amount:      req.Amount,
	})
	if err != nil {
		badRequest(c, err)
		return
	}

	ok(c, newTokenTransferData(instruction))
}

func (s *Server) sendSol(c *gin.Context) {
	var req sendSolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errMissingFields)
		return
	}
	if req.From == "" || req.To == "" {
		badRequest(c, errMissingFields)
		return
	}

	from, err := keys.DecodeAddress(req.From)
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := keys.DecodeAddress(req.To)
	if err != nil {
		badRequest(c, err)
		return
	}

	instruction, err := encoder.Encode(encoder.TransferNative{
		From:     from,
		To:       to,
		Lamports: req.Lamports,
	})
	if err != nil {
		badRequest(c, err)
		return
	}

	ok(c, newInstructionData(instruction))
}

func (s *Server) signMessage(c *gin.Context) {
	var req signMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errMissingFields)
		return
	}
	if req.Message == "" || req.Secret == "" {
		badRequest(c, errMissingFields)
		return
	}

	keypair, err := keys.FromSecret(req.Secret)
	if err != nil {
		badRequest(c, err)
		return
	}

	signature, err := keypair.Sign([]byte(req.Message))
	if err != nil {
		badRequest(c, err)
		return
	}

	ok(c, signatureData{
		Signature: keys.EncodeSignature(signature),
		PublicKey: keypair.Address(),
		Message:   req.Message,
	})
}

func (s *Server) verifyMessage(c *gin.Context) {
	var req verifyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errMissingFields)
		return
	}
	if req.Message == "" || req.Signature == "" || req.Pubkey == "" {
		badRequest(c, errMissingFields)
		return
	}

	pub, err := keys.DecodeAddress(req.Pubkey)
	if err != nil {
		badRequest(c, err)
		return
	}
	signature, err := keys.DecodeSignature(req.Signature)
	if err != nil {
		badRequest(c, err)
		return
	}

	ok(c, verificationData{
		Valid:   keys.Verify(pub, []byte(req.Message), signature),
		Message: req.Message,
		Pubkey:  req.Pubkey,
	})
}

func (s *Server) associatedAccount(c *gin.Context) {
	var req associatedAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errMissingFields)
		return
	}
	if req.Owner == "" || req.Mint == "" {
		badRequest(c, errMissingFields)
		return
	}

	owner, err := keys.DecodeAddress(req.Owner)
	if err != nil {
		badRequest(c, err)
		return
	}
	mint, err := keys.DecodeAddress(req.Mint)
	if err != nil {
		badRequest(c, err)
		return
	}

	address, err := token.GetAssociatedAccount(owner, mint)
	if err != nil {
		badRequest(c, err)
		return
	}

	ok(c, associatedAccountData{Address: keys.EncodeAddress(address)})
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}
