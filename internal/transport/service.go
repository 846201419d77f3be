package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "consistencycal.JournalService"

// FullMethod returns "/consistencycal.JournalService/<name>".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// PublicMethods do not require an access token.
var PublicMethods = map[string]bool{
	FullMethod("Ping"):         true,
	FullMethod("Register"):     true,
	FullMethod("GetSalt"):      true,
	FullMethod("Login"):        true,
	FullMethod("RefreshToken"): true,
	FullMethod("Logout"):       true,
}

// JournalServer is implemented by the server.
type JournalServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	GetDay(context.Context, *GetDayRequest) (*GetDayResponse, error)
	SaveDay(context.Context, *SaveDayRequest) (*SaveDayResponse, error)
	ListDays(context.Context, *ListDaysRequest) (*ListDaysResponse, error)
	AddImage(context.Context, *AddImageRequest) (*AddImageResponse, error)
	DeleteImage(context.Context, *DeleteImageRequest) (*DeleteImageResponse, error)
	AddVideo(context.Context, *AddVideoRequest) (*AddVideoResponse, error)
	DeleteVideo(context.Context, *DeleteVideoRequest) (*DeleteVideoResponse, error)
	ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
	ListQuotes(context.Context, *ListQuotesRequest) (*ListQuotesResponse, error)
	AddQuote(context.Context, *AddQuoteRequest) (*AddQuoteResponse, error)
	DeleteQuote(context.Context, *DeleteQuoteRequest) (*DeleteQuoteResponse, error)
	PresignUpload(context.Context, *PresignUploadRequest) (*PresignUploadResponse, error)
	Motivate(context.Context, *MotivateRequest) (*MotivateResponse, error)
}

// UnimplementedJournalServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedJournalServer struct{}

func (UnimplementedJournalServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedJournalServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedJournalServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedJournalServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedJournalServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedJournalServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedJournalServer) GetDay(context.Context, *GetDayRequest) (*GetDayResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDay not implemented")
}
func (UnimplementedJournalServer) SaveDay(context.Context, *SaveDayRequest) (*SaveDayResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveDay not implemented")
}
func (UnimplementedJournalServer) ListDays(context.Context, *ListDaysRequest) (*ListDaysResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDays not implemented")
}
func (UnimplementedJournalServer) AddImage(context.Context, *AddImageRequest) (*AddImageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddImage not implemented")
}
func (UnimplementedJournalServer) DeleteImage(context.Context, *DeleteImageRequest) (*DeleteImageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteImage not implemented")
}
func (UnimplementedJournalServer) AddVideo(context.Context, *AddVideoRequest) (*AddVideoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddVideo not implemented")
}
func (UnimplementedJournalServer) DeleteVideo(context.Context, *DeleteVideoRequest) (*DeleteVideoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteVideo not implemented")
}
func (UnimplementedJournalServer) ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTags not implemented")
}
func (UnimplementedJournalServer) ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTasks not implemented")
}
func (UnimplementedJournalServer) CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateTask not implemented")
}
func (UnimplementedJournalServer) UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateTask not implemented")
}
func (UnimplementedJournalServer) DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteTask not implemented")
}
func (UnimplementedJournalServer) ListQuotes(context.Context, *ListQuotesRequest) (*ListQuotesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListQuotes not implemented")
}
func (UnimplementedJournalServer) AddQuote(context.Context, *AddQuoteRequest) (*AddQuoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddQuote not implemented")
}
func (UnimplementedJournalServer) DeleteQuote(context.Context, *DeleteQuoteRequest) (*DeleteQuoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteQuote not implemented")
}
func (UnimplementedJournalServer) PresignUpload(context.Context, *PresignUploadRequest) (*PresignUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PresignUpload not implemented")
}
func (UnimplementedJournalServer) Motivate(context.Context, *MotivateRequest) (*MotivateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Motivate not implemented")
}

// unary adapts a typed method to grpc's untyped MethodHandler.
func unary[Req, Resp any](name string, call func(JournalServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(JournalServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

// ServiceDesc describes JournalService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JournalServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", JournalServer.Ping),
		unary("Register", JournalServer.Register),
		unary("GetSalt", JournalServer.GetSalt),
		unary("Login", JournalServer.Login),
		unary("RefreshToken", JournalServer.RefreshToken),
		unary("Logout", JournalServer.Logout),
		unary("GetDay", JournalServer.GetDay),
		unary("SaveDay", JournalServer.SaveDay),
		unary("ListDays", JournalServer.ListDays),
		unary("AddImage", JournalServer.AddImage),
		unary("DeleteImage", JournalServer.DeleteImage),
		unary("AddVideo", JournalServer.AddVideo),
		unary("DeleteVideo", JournalServer.DeleteVideo),
		unary("ListTags", JournalServer.ListTags),
		unary("ListTasks", JournalServer.ListTasks),
		unary("CreateTask", JournalServer.CreateTask),
		unary("UpdateTask", JournalServer.UpdateTask),
		unary("DeleteTask", JournalServer.DeleteTask),
		unary("ListQuotes", JournalServer.ListQuotes),
		unary("AddQuote", JournalServer.AddQuote),
		unary("DeleteQuote", JournalServer.DeleteQuote),
		unary("PresignUpload", JournalServer.PresignUpload),
		unary("Motivate", JournalServer.Motivate),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/transport/service.go",
}

func RegisterJournalServer(s grpc.ServiceRegistrar, srv JournalServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// JournalClient is the client side of JournalService.
type JournalClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	GetDay(ctx context.Context, in *GetDayRequest, opts ...grpc.CallOption) (*GetDayResponse, error)
	SaveDay(ctx context.Context, in *SaveDayRequest, opts ...grpc.CallOption) (*SaveDayResponse, error)
	ListDays(ctx context.Context, in *ListDaysRequest, opts ...grpc.CallOption) (*ListDaysResponse, error)
	AddImage(ctx context.Context, in *AddImageRequest, opts ...grpc.CallOption) (*AddImageResponse, error)
	DeleteImage(ctx context.Context, in *DeleteImageRequest, opts ...grpc.CallOption) (*DeleteImageResponse, error)
	AddVideo(ctx context.Context, in *AddVideoRequest, opts ...grpc.CallOption) (*AddVideoResponse, error)
	DeleteVideo(ctx context.Context, in *DeleteVideoRequest, opts ...grpc.CallOption) (*DeleteVideoResponse, error)
	ListTags(ctx context.Context, in *ListTagsRequest, opts ...grpc.CallOption) (*ListTagsResponse, error)
	ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error)
	CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*CreateTaskResponse, error)
	UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*UpdateTaskResponse, error)
	DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error)
	ListQuotes(ctx context.Context, in *ListQuotesRequest, opts ...grpc.CallOption) (*ListQuotesResponse, error)
	AddQuote(ctx context.Context, in *AddQuoteRequest, opts ...grpc.CallOption) (*AddQuoteResponse, error)
	DeleteQuote(ctx context.Context, in *DeleteQuoteRequest, opts ...grpc.CallOption) (*DeleteQuoteResponse, error)
	PresignUpload(ctx context.Context, in *PresignUploadRequest, opts ...grpc.CallOption) (*PresignUploadResponse, error)
	Motivate(ctx context.Context, in *MotivateRequest, opts ...grpc.CallOption) (*MotivateResponse, error)
}

type journalClient struct {
	cc grpc.ClientConnInterface
}

var _ JournalClient = (*journalClient)(nil)

func NewJournalClient(cc grpc.ClientConnInterface) JournalClient {
	return &journalClient{cc: cc}
}

func (c *journalClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, FullMethod(method), in, out, opts...)
}

func (c *journalClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, "Ping", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	if err := c.invoke(ctx, "Register", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	out := new(GetSaltResponse)
	if err := c.invoke(ctx, "GetSalt", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := new(LoginResponse)
	if err := c.invoke(ctx, "Login", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	out := new(RefreshTokenResponse)
	if err := c.invoke(ctx, "RefreshToken", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	out := new(LogoutResponse)
	if err := c.invoke(ctx, "Logout", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) GetDay(ctx context.Context, in *GetDayRequest, opts ...grpc.CallOption) (*GetDayResponse, error) {
	out := new(GetDayResponse)
	if err := c.invoke(ctx, "GetDay", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) SaveDay(ctx context.Context, in *SaveDayRequest, opts ...grpc.CallOption) (*SaveDayResponse, error) {
	out := new(SaveDayResponse)
	if err := c.invoke(ctx, "SaveDay", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) ListDays(ctx context.Context, in *ListDaysRequest, opts ...grpc.CallOption) (*ListDaysResponse, error) {
	out := new(ListDaysResponse)
	if err := c.invoke(ctx, "ListDays", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) AddImage(ctx context.Context, in *AddImageRequest, opts ...grpc.CallOption) (*AddImageResponse, error) {
	out := new(AddImageResponse)
	if err := c.invoke(ctx, "AddImage", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) DeleteImage(ctx context.Context, in *DeleteImageRequest, opts ...grpc.CallOption) (*DeleteImageResponse, error) {
	out := new(DeleteImageResponse)
	if err := c.invoke(ctx, "DeleteImage", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) AddVideo(ctx context.Context, in *AddVideoRequest, opts ...grpc.CallOption) (*AddVideoResponse, error) {
	out := new(AddVideoResponse)
	if err := c.invoke(ctx, "AddVideo", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) DeleteVideo(ctx context.Context, in *DeleteVideoRequest, opts ...grpc.CallOption) (*DeleteVideoResponse, error) {
	out := new(DeleteVideoResponse)
	if err := c.invoke(ctx, "DeleteVideo", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) ListTags(ctx context.Context, in *ListTagsRequest, opts ...grpc.CallOption) (*ListTagsResponse, error) {
	out := new(ListTagsResponse)
	if err := c.invoke(ctx, "ListTags", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	out := new(ListTasksResponse)
	if err := c.invoke(ctx, "ListTasks", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*CreateTaskResponse, error) {
	out := new(CreateTaskResponse)
	if err := c.invoke(ctx, "CreateTask", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*UpdateTaskResponse, error) {
	out := new(UpdateTaskResponse)
	if err := c.invoke(ctx, "UpdateTask", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error) {
	out := new(DeleteTaskResponse)
	if err := c.invoke(ctx, "DeleteTask", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) ListQuotes(ctx context.Context, in *ListQuotesRequest, opts ...grpc.CallOption) (*ListQuotesResponse, error) {
	out := new(ListQuotesResponse)
	if err := c.invoke(ctx, "ListQuotes", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) AddQuote(ctx context.Context, in *AddQuoteRequest, opts ...grpc.CallOption) (*AddQuoteResponse, error) {
	out := new(AddQuoteResponse)
	if err := c.invoke(ctx, "AddQuote", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) DeleteQuote(ctx context.Context, in *DeleteQuoteRequest, opts ...grpc.CallOption) (*DeleteQuoteResponse, error) {
	out := new(DeleteQuoteResponse)
	if err := c.invoke(ctx, "DeleteQuote", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) PresignUpload(ctx context.Context, in *PresignUploadRequest, opts ...grpc.CallOption) (*PresignUploadResponse, error) {
	out := new(PresignUploadResponse)
	if err := c.invoke(ctx, "PresignUpload", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) Motivate(ctx context.Context, in *MotivateRequest, opts ...grpc.CallOption) (*MotivateResponse, error) {
	out := new(MotivateResponse)
	if err := c.invoke(ctx, "Motivate", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
